package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			total, err := apiClient.Posts.Total(ctx)
			if err != nil {
				fatal("stats", err)
			}
			byCat, err := apiClient.Posts.CategoriesStats(ctx)
			if err != nil {
				fatal("stats", err)
			}

			if flagFmt == "table" {
				rows := [][]string{{"(all)", fmt.Sprintf("%d", total.Total)}}
				for _, cs := range byCat.Categories {
					rows = append(rows, []string{cs.Slug, fmt.Sprintf("%d", cs.Count)})
				}
				formatTable([]string{"CATEGORY", "POSTS"}, rows)
				return
			}
			output(map[string]any{
				"total":      total.Total,
				"categories": byCat.Categories,
			}, fmt.Sprintf("%d", total.Total))
		},
	}
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			if flagFmt == "table" {
				formatTable(
					[]string{"FIELD", "VALUE"},
					[][]string{
						{"Status", resp.Status},
						{"Version", resp.Version},
						{"Database", resp.Database},
						{"Embeddings", resp.Embeddings},
						{"Model", resp.EmbeddingModel},
						{"Dimensions", fmt.Sprintf("%d", resp.EmbeddingDimensions)},
					},
				)
				return
			}
			output(resp, resp.Status)
		},
	}
}
