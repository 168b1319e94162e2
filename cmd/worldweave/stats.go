package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Collaboration statistics",
		RunE:  runWorldStats,
	}

	cmd.AddCommand(
		newStatsWorldCmd(),
		newStatsContentCmd(),
	)

	return cmd
}

func newStatsWorldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "world",
		Short: "Show collaboration statistics for the world",
		RunE:  runWorldStats,
	}
}

func runWorldStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		stats, err := d.Stats.HandleWorld(ctx, worldID)
		if err != nil {
			return err
		}

		fmt.Printf("Links:             %d\n", stats.TotalLinks)
		fmt.Printf("Cross-author:      %d (%.0f%%)\n", stats.CrossAuthorLinks, stats.CrossAuthorRatio*100)
		fmt.Printf("Contributors:      %d\n", stats.ContributorCount)

		if len(stats.Contributors) > 0 {
			fmt.Printf("\n%-20s %-8s %-8s %-9s %s\n", "AUTHOR", "CONTENT", "LINKED", "RECEIVED", "SCORE")
			for _, c := range stats.Contributors {
				fmt.Printf("%-20s %-8d %-8d %-9d %.2f\n",
					c.Author, c.ContentCount, c.LinksCreated, c.LinksReceived, c.CollaborationScore)
			}
		}
		return nil
	})
}

func newStatsContentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "content KIND ID",
		Short: "Show attribution for one content item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContentStats(cmd, args[0], args[1])
		},
	}
}

func runContentStats(cmd *cobra.Command, kind, id string) error {
	ctx := cmd.Context()

	worldID, err := requireWorld()
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		view, err := d.Stats.HandleContent(ctx, worldID, kind, id)
		if err != nil {
			return err
		}

		fmt.Printf("Author:        %s\n", view.Author)
		fmt.Printf("Created:       %s\n", view.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Outgoing:      %d\n", view.OutgoingCount)
		fmt.Printf("Incoming:      %d\n", view.IncomingCount)
		fmt.Printf("Tags:          %d\n", view.TagCount)
		fmt.Printf("Collaborative: %t\n", view.IsCollaborative)
		fmt.Printf("Score:         %.2f\n", view.CollaborationScore)
		return nil
	})
}
