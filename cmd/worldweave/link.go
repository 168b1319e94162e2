package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avencia/worldweave/internal/domain/entities"
)

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link content items and browse the graph",
	}

	cmd.AddCommand(
		newLinkAddCmd(),
		newLinkShowCmd(),
	)

	return cmd
}

func newLinkAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add FROM_KIND FROM_ID TO_KIND TO_ID",
		Short: "Link two content items",
		Long:  "Creates a directed link between two existing content items. Adding the same link twice is a no-op.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkAdd(cmd, args[0], args[1], args[2], args[3])
		},
	}
}

func runLinkAdd(cmd *cobra.Command, fromKind, fromID, toKind, toID string) error {
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
		link, err := d.Links.HandleAdd(ctx, worldID, fromKind, fromID, toKind, toID, author)
		if err != nil {
			return fmt.Errorf("adding link: %w", err)
		}

		fmt.Printf("Linked %s -> %s\n", link.From, link.To)
		return nil
	})
}

func newLinkShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show KIND ID",
		Short: "Show a content item's links in both directions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkShow(cmd, args[0], args[1])
		},
	}
}

func runLinkShow(cmd *cobra.Command, kind, id string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		view, err := d.Links.HandleNeighborhood(ctx, worldID, kind, id)
		if err != nil {
			return err
		}

		if len(view.Outgoing) == 0 && len(view.Incoming) == 0 {
			fmt.Println("No links.")
			return nil
		}

		if len(view.Outgoing) > 0 {
			fmt.Println("Outgoing:")
			for _, resolved := range view.Outgoing {
				printResolved(resolved)
			}
		}
		if len(view.Incoming) > 0 {
			fmt.Println("Incoming:")
			for _, resolved := range view.Incoming {
				printResolved(resolved)
			}
		}
		return nil
	})
}

func printResolved(resolved entities.ResolvedLink) {
	fmt.Printf("  %-10s %-38s %-30s by %s\n",
		resolved.Other.Kind, resolved.Other.ID, truncate(resolved.Other.Title, 30), resolved.Other.Author)
}
