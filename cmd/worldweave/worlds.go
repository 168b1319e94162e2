package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWorldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "Manage worlds",
		RunE:  runWorldsList,
	}

	cmd.AddCommand(
		newWorldsListCmd(),
		newWorldsCreateCmd(),
		newWorldsShowCmd(),
	)

	return cmd
}

func newWorldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List worlds visible to you",
		RunE:  runWorldsList,
	}
}

func runWorldsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Worlds.HandleList(ctx, globalAuthor)
		if err != nil {
			return fmt.Errorf("listing worlds: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No worlds found.")
			fmt.Println("Use 'worldweave worlds create TITLE' to create one.")
			return nil
		}

		fmt.Printf("%-38s %-30s %-9s %s\n", "ID", "TITLE", "VISIBILITY", "CREATOR")
		for _, world := range result.Worlds {
			fmt.Printf("%-38s %-30s %-9s %s\n", world.ID, world.Title, world.Visibility, world.Creator)
		}
		return nil
	})
}

func newWorldsCreateCmd() *cobra.Command {
	var visibility string

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a new world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorldsCreate(cmd, args[0], visibility)
		},
	}

	cmd.Flags().StringVar(&visibility, "visibility", "public", "World visibility (public or private)")

	return cmd
}

func runWorldsCreate(cmd *cobra.Command, title, visibility string) error {
	ctx := cmd.Context()

	author, err := requireAuthor()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		world, err := d.Worlds.HandleCreate(ctx, title, visibility, author)
		if err != nil {
			return fmt.Errorf("creating world: %w", err)
		}

		fmt.Printf("Created world %q (%s)\n", world.Title, world.ID)
		return nil
	})
}

func newWorldsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorldsShow(cmd, args[0])
		},
	}
}

func runWorldsShow(cmd *cobra.Command, worldID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		world, err := d.Worlds.HandleGet(ctx, worldID)
		if err != nil {
			return err
		}

		fmt.Printf("ID:         %s\n", world.ID)
		fmt.Printf("Title:      %s\n", world.Title)
		fmt.Printf("Visibility: %s\n", world.Visibility)
		fmt.Printf("Creator:    %s\n", world.Creator)
		fmt.Printf("Created:    %s\n", world.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	})
}
