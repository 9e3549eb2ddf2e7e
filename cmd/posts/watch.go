package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the content tree and resync on change",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		module, cfg, err := buildModule()
		if err != nil {
			fatal("initialize posts", err)
		}
		defer module.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := refreshCatalog(ctx, module); err != nil {
			fatal("sync catalog", err)
		}

		watcher, err := module.Watcher(func(ctx context.Context, paths []string) {
			fmt.Printf("%d file(s) changed\n", len(paths))
			result, err := module.Catalog().Sync(ctx, posts.SyncOptions{Prune: true})
			if err != nil {
				fmt.Fprintf(os.Stderr, "sync failed: %v\n", err)
				return
			}
			fmt.Printf("created %d, updated %d, unchanged %d, removed %d\n",
				result.Created, result.Updated, result.Unchanged, result.Removed)
			for _, failure := range result.Failures {
				fmt.Fprintf(os.Stderr, "failed %s: %v\n", failure.Path, failure.Err)
			}

			docs, err := module.Markdown().LoadDirectory(ctx, "", posts.ScanOptions{})
			if err != nil {
				fmt.Fprintf(os.Stderr, "load posts: %v\n", err)
				return
			}
			report, err := module.Linter().Run(ctx, docs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint failed: %v\n", err)
				return
			}
			if report.HasIssues() {
				fmt.Print(posts.RenderReportText(report))
			}
		})
		if err != nil {
			fatal("start watcher", err)
		}

		fmt.Printf("watching %s (ctrl-c to stop)\n", cfg.Content.Dir)
		if err := watcher.Run(ctx); err != nil {
			fatal("watch content", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
