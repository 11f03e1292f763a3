package main

import (
	"context"

	"github.com/neonpress/neonpress/client"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		keyword  bool
		category string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts",
		Long:  "Semantic search over the catalog. Use --keyword to force keyword matching.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.PostListOptions{
				Limit:    limit,
				Category: category,
			}
			if keyword {
				opts.Keyword = args[0]
			} else {
				opts.Semantic = args[0]
			}
			page, err := apiClient.Posts.List(context.Background(), opts)
			if err != nil {
				fatal("search", err)
			}
			if flagFmt == "table" {
				printPostTable(page.Items)
				return
			}
			output(page, "")
		},
	}
	cmd.Flags().BoolVar(&keyword, "keyword", false, "Use keyword search instead of semantic")
	cmd.Flags().StringVar(&category, "category", "", "Restrict to a category slug")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	return cmd
}
