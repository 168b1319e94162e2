package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag content and browse tags",
	}

	cmd.AddCommand(
		newTagAddCmd(),
		newTagListCmd(),
		newTagShowCmd(),
		newTagSuggestCmd(),
	)

	return cmd
}

func newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add KIND ID NAME",
		Short: "Tag a content item",
		Long:  "Tags a content item. The name is normalized; the tag is created on first use in the world.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagAdd(cmd, args[0], args[1], args[2])
		},
	}
}

func runTagAdd(cmd *cobra.Command, kind, id, name string) error {
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
		tag, err := d.Tags.HandleAdd(ctx, worldID, kind, id, name, author)
		if err != nil {
			return fmt.Errorf("adding tag: %w", err)
		}

		fmt.Printf("Tagged %s/%s with %q\n", kind, id, tag.Name)
		return nil
	})
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the world's tags with usage counts",
		RunE:  runTagList,
	}
}

func runTagList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.Tags.HandleListWorld(ctx, worldID)
		if err != nil {
			return fmt.Errorf("listing tags: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Printf("%-30s %-6s %s\n", "NAME", "USES", "AUTHOR")
		for _, tag := range result.Tags {
			fmt.Printf("%-30s %-6d %s\n", tag.Name, tag.UsageCount, tag.Author)
		}
		return nil
	})
}

func newTagShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a tag and everything carrying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagShow(cmd, args[0])
		},
	}
}

func runTagShow(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		result, err := d.Tags.HandleGet(ctx, worldID, name)
		if err != nil {
			return err
		}

		fmt.Printf("Tag %q used by %d item(s)\n\n", result.Tag.Name, result.Tag.UsageCount)
		for _, item := range result.TaggedContent {
			fmt.Printf("%-38s %-10s %-30s %s\n", item.ID, item.Kind, truncate(item.Title, 30), item.Author)
		}
		return nil
	})
}

func newTagSuggestCmd() *cobra.Command {
	var (
		kind string
		id   string
	)

	cmd := &cobra.Command{
		Use:   "suggest PREFIX",
		Short: "Suggest tag names matching a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTagSuggest(cmd, args[0], kind, id)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Exclude tags already on this content item (with --id)")
	cmd.Flags().StringVar(&id, "id", "", "Exclude tags already on this content item (with --kind)")

	return cmd
}

func runTagSuggest(cmd *cobra.Command, prefix, kind, id string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		names, err := d.Tags.HandleSuggest(ctx, worldID, prefix, kind, id)
		if err != nil {
			return fmt.Errorf("suggesting tags: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}
		fmt.Println(strings.Join(names, "\n"))
		return nil
	})
}
