package command

// bookmark.go manages the signed-in user's watch statuses.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"animehub/internal/browse"
	"animehub/internal/watchstatus"
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage your bookmarked anime",
	Long: `Bookmark anime with a watch status. Valid statuses:
  ` + strings.Join(watchstatus.All(), ", "),
}

var bookmarkSetCmd = &cobra.Command{
	Use:   "set <anime_id> <status>",
	Short: "Bookmark an anime with a watch status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		status := args[1]
		if !watchstatus.Valid(status) {
			return fmt.Errorf("invalid status %q, want one of: %s", status, strings.Join(watchstatus.All(), ", "))
		}

		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		// Fetch the anime first so the bookmark stores a snapshot
		view := feed.AnimeDetail(cmd.Context(), id)
		if view.Detail == nil {
			return fmt.Errorf("anime %d not available", id)
		}

		_, err = feed.SetBookmark(cmd.Context(), view.Detail.Media, status)
		if errors.Is(err, browse.ErrSignInRequired) {
			return errors.New("sign in required: run 'animehub auth login' first")
		}
		return err
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove <anime_id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		err = feed.RemoveBookmark(cmd.Context(), id, fmt.Sprintf("#%d", id))
		if errors.Is(err, browse.ErrSignInRequired) {
			return errors.New("sign in required: run 'animehub auth login' first")
		}
		return err
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all your bookmarks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := startSession(cmd.Context())
		defer sess.Close()

		if _, ok := sess.CurrentUserID(); !ok {
			return errors.New("sign in required: run 'animehub auth login' first")
		}

		records, err := api.ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("could not list bookmarks: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No bookmarks yet.")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("  %-8d %-14s %s  %s\n", rec.AnimeID, rec.Status, formatScore(rec.AnimeScore), rec.AnimeTitle)
		}
		return nil
	},
}

func init() {
	bookmarkCmd.AddCommand(bookmarkSetCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)

	rootCmd.AddCommand(bookmarkCmd)
}
