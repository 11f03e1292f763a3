package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(categoryListCmd())
	return cmd
}

func categoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active categories",
		Run: func(cmd *cobra.Command, args []string) {
			cats, err := apiClient.Categories.List(context.Background())
			if err != nil {
				fatal("list categories", err)
			}
			if flagFmt == "table" {
				headers := []string{"SLUG", "NAME", "COLOR", "SYSTEM"}
				var rows [][]string
				for _, c := range cats {
					rows = append(rows, []string{c.Slug, c.Name, c.Color, fmt.Sprintf("%t", c.IsSystem)})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, c := range cats {
					fmt.Println(c.Slug)
				}
				return
			}
			output(cats, "")
		},
	}
}
