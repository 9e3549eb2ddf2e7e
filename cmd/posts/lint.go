package main

import (
	"context"
	"fmt"
	"os"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var lintJSON bool

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run hygiene checks over the content tree",
	Long: `Check every post for missing titles, malformed dates, duplicate
slugs and the rest of the configured rules. Exits non-zero when a finding
reaches the configured threshold.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		module, _, err := buildModule()
		if err != nil {
			fatal("initialize posts", err)
		}
		defer module.Close()

		ctx := context.Background()
		docs, err := module.Markdown().LoadDirectory(ctx, "", posts.ScanOptions{})
		if err != nil {
			fatal("load posts", err)
		}

		report, err := module.Linter().Run(ctx, docs)
		if err != nil {
			fatal("lint posts", err)
		}

		if lintJSON {
			out, err := posts.RenderReportJSON(report)
			if err != nil {
				fatal("encode report", err)
			}
			fmt.Println(string(out))
		} else {
			fmt.Print(posts.RenderReportText(report))
		}

		if report.FailsAt(module.Linter().Threshold()) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Output the report in JSON format")
}
