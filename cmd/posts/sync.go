package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var (
	syncPrune  bool
	syncDryRun bool
	syncJSON   bool
)

type syncReport struct {
	Created   int               `json:"created"`
	Updated   int               `json:"updated"`
	Unchanged int               `json:"unchanged"`
	Removed   int               `json:"removed"`
	Failures  []syncReportEntry `json:"failures,omitempty"`
}

type syncReportEntry struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the catalog in line with the content tree",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		module, _, err := buildModule()
		if err != nil {
			fatal("initialize posts", err)
		}
		defer module.Close()

		result, err := module.Catalog().Sync(context.Background(), posts.SyncOptions{
			Prune:  syncPrune,
			DryRun: syncDryRun,
		})
		if err != nil {
			fatal("sync catalog", err)
		}

		if syncJSON {
			report := syncReport{
				Created:   result.Created,
				Updated:   result.Updated,
				Unchanged: result.Unchanged,
				Removed:   result.Removed,
			}
			for _, failure := range result.Failures {
				report.Failures = append(report.Failures, syncReportEntry{
					Path:  failure.Path,
					Error: failure.Err.Error(),
				})
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fatal("encode result", err)
			}
		} else {
			fmt.Printf("created %d, updated %d, unchanged %d, removed %d\n",
				result.Created, result.Updated, result.Unchanged, result.Removed)
			for _, failure := range result.Failures {
				fmt.Fprintf(os.Stderr, "failed %s: %v\n", failure.Path, failure.Err)
			}
		}

		if len(result.Failures) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "Remove catalog entries whose files are gone")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Report what would change without writing")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Output the result in JSON format")
}
