package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var (
	showRender bool
	showMeta   bool
)

var showCmd = &cobra.Command{
	Use:   "show [slug|path]",
	Short: "Print one post",
	Long: `Print a post by catalog slug or by path relative to the content root.
Outputs the raw Markdown body by default, a styled terminal rendering with
--render, or the frontmatter as JSON with --meta.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		module, _, err := buildModule()
		if err != nil {
			fatal("initialize posts", err)
		}
		defer module.Close()

		ctx := context.Background()
		if err := refreshCatalog(ctx, module); err != nil {
			fatal("sync catalog", err)
		}

		doc, err := resolvePost(ctx, module, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		if showMeta {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc.FrontMatter); err != nil {
				fatal("encode frontmatter", err)
			}
			return
		}

		if showRender {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				fatal("build renderer", err)
			}
			source := string(doc.Body)
			if title := doc.FrontMatter.Title; title != "" {
				source = "# " + title + "\n\n" + source
			}
			out, err := renderer.Render(source)
			if err != nil {
				fatal("render post", err)
			}
			fmt.Print(out)
			return
		}

		fmt.Print(string(doc.Body))
	},
}

// resolvePost accepts either a catalog slug or a path relative to the
// content root.
func resolvePost(ctx context.Context, module *posts.Module, key string) (*posts.Document, error) {
	post, err := module.Catalog().GetBySlug(ctx, key)
	if err == nil {
		return module.Markdown().Load(ctx, post.Path, posts.ScanOptions{})
	}
	if !posts.IsNotFound(err) {
		return nil, err
	}
	doc, loadErr := module.Markdown().Load(ctx, key, posts.ScanOptions{})
	if loadErr != nil {
		return nil, fmt.Errorf("no post with slug or path %q", key)
	}
	return doc, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRender, "render", false, "Render the post for the terminal")
	showCmd.Flags().BoolVar(&showMeta, "meta", false, "Print the frontmatter as JSON")
}
