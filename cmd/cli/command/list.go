package command

// list.go manages the user's named anime lists.

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage your named anime lists",
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		list, err := api.CreateList(cmd.Context(), args[0], description)
		if err != nil {
			return fmt.Errorf("could not create list: %w", err)
		}

		fmt.Printf("✓ Created list %q (#%d)\n", list.Name, list.ID)
		return nil
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all your lists with their items",
	RunE: func(cmd *cobra.Command, args []string) error {
		lists, err := api.Lists(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not load lists: %w", err)
		}
		if lists.Total == 0 {
			fmt.Println("No lists yet.")
			return nil
		}

		for _, list := range lists.Lists {
			fmt.Printf("%s (#%d) - %d items\n", list.Name, list.ID, len(list.Items))
			if list.Description != "" {
				fmt.Printf("  %s\n", list.Description)
			}
			for _, item := range list.Items {
				fmt.Printf("  %-8d %s  %s\n", item.AnimeID, formatScore(item.AnimeScore), item.AnimeTitle)
			}
		}
		return nil
	},
}

var listAddCmd = &cobra.Command{
	Use:   "add <list_id> <anime_id>",
	Short: "Add an anime to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid list id %q", args[0])
		}
		animeID, err := parseID(args[1])
		if err != nil {
			return err
		}

		// Fetch the anime so the list item stores a snapshot
		detail := api.AnimeDetail(cmd.Context(), animeID)
		if detail == nil {
			return fmt.Errorf("anime %d not available", animeID)
		}

		item, err := api.AddListItem(cmd.Context(), listID, detail.Media)
		if err != nil {
			return fmt.Errorf("could not add to list: %w", err)
		}

		fmt.Printf("✓ Added %q to list #%d\n", item.AnimeTitle, listID)
		return nil
	},
}

var listRemoveCmd = &cobra.Command{
	Use:   "remove <list_id> <anime_id>",
	Short: "Remove an anime from a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid list id %q", args[0])
		}
		animeID, err := parseID(args[1])
		if err != nil {
			return err
		}

		if err := api.RemoveListItem(cmd.Context(), listID, animeID); err != nil {
			return fmt.Errorf("could not remove from list: %w", err)
		}

		fmt.Printf("✓ Removed anime %d from list #%d\n", animeID, listID)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listCreateCmd)
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listAddCmd)
	listCmd.AddCommand(listRemoveCmd)

	listCreateCmd.Flags().StringP("description", "d", "", "List description")

	rootCmd.AddCommand(listCmd)
}
