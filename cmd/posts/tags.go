package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tag usage across all posts, drafts included",
	Args:  cobra.NoArgs,
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

		tags, err := module.Catalog().Tags(ctx)
		if err != nil {
			fatal("list tags", err)
		}

		if tagsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(tags); err != nil {
				fatal("encode tags", err)
			}
			return
		}

		for _, tag := range tags {
			fmt.Printf("%4d  %s\n", tag.Count, tag.Tag)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output in JSON format")
}
