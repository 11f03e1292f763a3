package main

import (
	"context"
	"fmt"
	"os"

	"github.com/neonpress/neonpress/client"
	"github.com/spf13/cobra"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Manage posts",
	}
	cmd.AddCommand(postListCmd())
	cmd.AddCommand(postGetCmd())
	cmd.AddCommand(postCreateCmd())
	cmd.AddCommand(postUpdateCmd())
	cmd.AddCommand(postDeleteCmd())
	return cmd
}

func postListCmd() *cobra.Command {
	var (
		page, limit           int
		sort, order, category string
		keyword               string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Run: func(cmd *cobra.Command, args []string) {
			if page < 0 {
				fmt.Fprintf(os.Stderr, "Error: --page must be non-negative\n")
				os.Exit(1)
			}
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.PostListOptions{
				Page:     page,
				Limit:    limit,
				Sort:     sort,
				Order:    order,
				Category: category,
				Keyword:  keyword,
			}
			pageResp, err := apiClient.Posts.List(context.Background(), opts)
			if err != nil {
				fatal("list posts", err)
			}
			if flagFmt == "table" {
				printPostTable(pageResp.Items)
				return
			}
			if flagFmt == "quiet" {
				for _, p := range pageResp.Items {
					fmt.Println(p.ID)
				}
				return
			}
			output(pageResp, "")
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 0, "Results per page")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort field: date|title|created_at")
	cmd.Flags().StringVar(&order, "order", "", "Sort order: asc|desc")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category slug")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Keyword filter")
	return cmd
}

func postGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a post by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post, err := apiClient.Posts.Get(context.Background(), args[0])
			if err != nil {
				fatal("get post", err)
			}
			output(post, post.ID)
		},
	}
}

func postCreateCmd() *cobra.Command {
	var category, date, excerpt, content string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreatePostRequest{
				Title:    args[0],
				Category: category,
				Date:     date,
				Excerpt:  excerpt,
				Content:  content,
			}
			post, err := apiClient.Posts.Create(context.Background(), req)
			if err != nil {
				fatal("create post", err)
			}
			output(post, post.ID)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category slug")
	cmd.Flags().StringVar(&date, "date", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "Short excerpt")
	cmd.Flags().StringVar(&content, "content", "", "Post body")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("date")
	return cmd
}

func postUpdateCmd() *cobra.Command {
	var title, category, date, excerpt, content string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.UpdatePostRequest{}
			if title != "" {
				req.Title = &title
			}
			if category != "" {
				req.Category = &category
			}
			if date != "" {
				req.Date = &date
			}
			if excerpt != "" {
				req.Excerpt = &excerpt
			}
			if content != "" {
				req.Content = &content
			}
			post, err := apiClient.Posts.Update(context.Background(), args[0], req)
			if err != nil {
				fatal("update post", err)
			}
			output(post, post.ID)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Post title")
	cmd.Flags().StringVar(&category, "category", "", "Category slug")
	cmd.Flags().StringVar(&date, "date", "", "Publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "Short excerpt")
	cmd.Flags().StringVar(&content, "content", "", "Post body")
	return cmd
}

func postDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Posts.Delete(context.Background(), args[0]); err != nil {
				fatal("delete post", err)
			}
			fmt.Println("deleted")
		},
	}
}

func printPostTable(posts []client.Post) {
	headers := []string{"ID", "DATE", "CATEGORY", "TITLE"}
	var rows [][]string
	for _, p := range posts {
		rows = append(rows, []string{p.ID, p.Date, p.Category, p.Title})
	}
	formatTable(headers, rows)
}
