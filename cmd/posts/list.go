package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	posts "github.com/goliatone/go-posts"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	listTag    string
	listDrafts bool
	listLimit  int
	listSort   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts in the catalog",
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

		drafts := posts.DraftsExclude
		if listDrafts {
			drafts = posts.DraftsInclude
		}

		records, total, err := module.Catalog().List(ctx, posts.ListOptions{
			Tag:    listTag,
			Drafts: drafts,
			Sort:   posts.SortOrder(listSort),
			Limit:  listLimit,
		})
		if err != nil {
			fatal("list posts", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("encode posts", err)
			}
			return
		}

		for _, post := range records {
			date := "          "
			if !post.Date.IsZero() {
				date = post.Date.Format("2006-01-02")
			}
			marker := " "
			if post.Draft {
				marker = "*"
			}
			line := fmt.Sprintf("%s %s %-32s %s", date, marker, post.Slug, post.Title)
			if len(post.Tags) > 0 {
				line += "  [" + strings.Join(post.Tags, ", ") + "]"
			}
			fmt.Println(line)
		}
		if total > len(records) {
			fmt.Printf("(%d of %d posts)\n", len(records), total)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter posts by tag")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "Include draft posts")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of posts to print (0 prints all)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort order: date_desc, date_asc, title or path")
}
