package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var (
	exportDrafts bool
	exportOnly   []string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write feeds, sitemap and manifest for the published posts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		module, _, err := buildModule(func(cfg *posts.Config) {
			if strings.TrimSpace(exportOut) != "" {
				cfg.Export.OutputDir = exportOut
			}
		})
		if err != nil {
			fatal("initialize posts", err)
		}
		defer module.Close()

		ctx := context.Background()
		if err := refreshCatalog(ctx, module); err != nil {
			fatal("sync catalog", err)
		}

		result, err := module.Exporter().Export(ctx, posts.ExportOptions{
			IncludeDrafts: exportDrafts,
			Only:          exportOnly,
		})
		if err != nil {
			fatal("export artifacts", err)
		}

		fmt.Printf("exported %d posts at %s\n", result.Posts, result.GeneratedAt.Format(time.RFC3339))
		for _, artifact := range result.Artifacts {
			fmt.Printf("  %-14s %7d bytes  %s\n", artifact.Name, artifact.Size, artifact.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportDrafts, "drafts", false, "Include draft posts in the manifest")
	exportCmd.Flags().StringSliceVar(&exportOnly, "only", nil, "Restrict the run to the named artifacts (feed.xml, atom.xml, sitemap.xml, robots.txt, manifest.json)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Override the output directory")
}
