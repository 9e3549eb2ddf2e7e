package main

import (
	"context"
	"strings"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var (
	configPath string
	contentDir string
	verbose    bool
	jsonLogs   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "posts",
	Short: "Manage a tree of Markdown blog posts",
	Long: `posts keeps a Hugo-style content tree honest. It catalogs Markdown
files with YAML frontmatter, runs hygiene checks over them, and exports
feeds and sitemaps for the published set.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("posts", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a posts config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&contentDir, "content", "", "Override the content directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit structured JSON logs")
}

// buildModule loads configuration, applies CLI overrides, and constructs the
// module. The caller owns Close.
func buildModule(overrides ...func(*posts.Config)) (*posts.Module, posts.Config, error) {
	cfg := posts.DefaultConfig()
	if configPath != "" {
		loaded, err := posts.LoadConfig(configPath)
		if err != nil {
			return nil, posts.Config{}, err
		}
		cfg = loaded
	}
	if strings.TrimSpace(contentDir) != "" {
		cfg.Content.Dir = contentDir
	}
	if verbose {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "console"
		cfg.Logging.Level = "debug"
	}
	if jsonLogs {
		cfg.Features.Logger = true
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = "json"
	}
	for _, override := range overrides {
		if override != nil {
			override(&cfg)
		}
	}

	module, err := posts.New(cfg)
	if err != nil {
		return nil, posts.Config{}, err
	}
	return module, cfg, nil
}

// refreshCatalog brings the catalog in line with the content tree before a
// query runs. With the default in-memory storage every invocation starts
// empty, so query commands sync first; against sqlite this is a cheap no-op
// when nothing changed.
func refreshCatalog(ctx context.Context, module *posts.Module) error {
	_, err := module.Catalog().Sync(ctx, posts.SyncOptions{})
	return err
}
