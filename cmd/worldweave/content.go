package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avencia/worldweave/internal/application/handlers"
	"github.com/avencia/worldweave/internal/domain/entities"
)

func newContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Create and browse content",
	}

	cmd.AddCommand(
		newContentCreateCmd(),
		newContentListCmd(),
		newContentShowCmd(),
	)

	return cmd
}

func newContentCreateCmd() *cobra.Command {
	var (
		kind    string
		title   string
		body    string
		details string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new content item",
		Long:  "Creates an immutable content item in the world. Valid kinds: " + kindNames() + ". Details carries the kind-specific fields as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentCreate(cmd, kind, title, body, details)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Content kind (page, essay, character, story, image)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Content title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Content body")
	cmd.Flags().StringVarP(&details, "details", "d", "", "Kind-specific fields as JSON")

	return cmd
}

func runContentCreate(cmd *cobra.Command, kind, title, body, details string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}
	author, err := requireAuthor()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		item, err := d.Content.HandleCreate(ctx, handlers.ContentInput{
			WorldID: worldID,
			Kind:    kind,
			Title:   title,
			Body:    body,
			Author:  author,
			Details: json.RawMessage(details),
		})
		if err != nil {
			return fmt.Errorf("creating content: %w", err)
		}

		fmt.Printf("Created %s %q (%s)\n", item.Kind, item.Title, item.ID)
		return nil
	})
}

func newContentListCmd() *cobra.Command {
	var (
		kind   string
		author string
		query  string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content in the world, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentList(cmd, kind, author, query, limit, offset)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by content kind")
	cmd.Flags().StringVar(&author, "by", "", "Filter by author")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by title or body substring")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of items to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of items to skip")

	return cmd
}

func runContentList(cmd *cobra.Command, kind, author, query string, limit, offset int) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.Content.HandleList(ctx, worldID, kind, author, query, limit, offset)
		if err != nil {
			return fmt.Errorf("listing content: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No content found.")
			return nil
		}

		fmt.Printf("%-38s %-10s %-30s %s\n", "ID", "KIND", "TITLE", "AUTHOR")
		for _, item := range result.Items {
			fmt.Printf("%-38s %-10s %-30s %s\n", item.ID, item.Kind, truncate(item.Title, 30), item.Author)
		}
		return nil
	})
}

func newContentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show KIND ID",
		Short: "Show one content item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentShow(cmd, args[0], args[1])
		},
	}
}

func runContentShow(cmd *cobra.Command, kind, id string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		item, err := d.Content.HandleGet(ctx, worldID, kind, id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:      %s\n", item.ID)
		fmt.Printf("Kind:    %s\n", item.Kind)
		fmt.Printf("Title:   %s\n", item.Title)
		fmt.Printf("Author:  %s\n", item.Author)
		fmt.Printf("Created: %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))

		if details, err := item.EncodeDetails(); err == nil && string(details) != "{}" {
			fmt.Printf("Details: %s\n", details)
		}

		fmt.Printf("\n%s\n", item.Body)

		tags, err := d.Tags.HandleListForContent(ctx, worldID, kind, id)
		if err == nil && tags.Total > 0 {
			names := make([]string, len(tags.Tags))
			for i, tag := range tags.Tags {
				names[i] = tag.Name
			}
			fmt.Printf("\nTags: %s\n", strings.Join(names, ", "))
		}
		return nil
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// kindNames lists the valid kinds for help output.
func kindNames() string {
	names := make([]string, len(entities.Kinds))
	for i, k := range entities.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
