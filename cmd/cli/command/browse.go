package command

// browse.go drives the catalog views: home sections, search, advanced
// filter, and the detail pages.

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"animehub/internal/anilist"
	"animehub/internal/browse"
	"animehub/internal/imageproxy"
	"animehub/internal/session"
)

// printNotifier renders bookmark outcome notifications on the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println("✓ " + msg) }
func (printNotifier) Failure(msg string) { fmt.Println("✗ " + msg) }

// newFeed wires a browse feed over the API client and a started session.
func newFeed(ctx context.Context) (*browse.Feed, *session.Session) {
	sess := startSession(ctx)
	return browse.NewFeed(api, api, sess, printNotifier{}), sess
}

func formatScore(score *int) string {
	if score == nil {
		return "  - "
	}
	return fmt.Sprintf("%3d%%", *score)
}

func printMediaList(items []anilist.Media) {
	for _, m := range items {
		fmt.Printf("  %-8d %s  %-10s %s\n", m.ID, formatScore(m.AverageScore), m.Format, m.Title.Display())
	}
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the trending, popular, and upcoming sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		feed.LoadHome(cmd.Context())

		fmt.Println("TRENDING NOW")
		printMediaList(feed.Trending())
		fmt.Println("\nALL TIME POPULAR")
		printMediaList(feed.Popular())
		fmt.Println("\nUPCOMING")
		printMediaList(feed.Upcoming())

		if shelf := feed.RecentlyBookmarked(cmd.Context()); len(shelf) > 0 {
			fmt.Println("\nRECENTLY BOOKMARKED")
			for _, rec := range shelf {
				fmt.Printf("  %-8d %-14s %s\n", rec.AnimeID, rec.Status, rec.AnimeTitle)
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search anime by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, _ := cmd.Flags().GetInt("pages")

		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		text := strings.Join(args, " ")
		feed.SetSearch(cmd.Context(), text)
		for i := 1; i < pages; i++ {
			feed.LoadMore(cmd.Context(), browse.SectionSearch)
		}

		results := feed.SearchResults()
		if len(results) == 0 {
			fmt.Printf("No results for %q.\n", text)
			return nil
		}
		fmt.Printf("Results for %q:\n", text)
		printMediaList(results)
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Browse the catalog with genre, year, season, and sort filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		genre, _ := cmd.Flags().GetString("genre")
		year, _ := cmd.Flags().GetInt("year")
		season, _ := cmd.Flags().GetString("season")
		sort, _ := cmd.Flags().GetString("sort")
		pages, _ := cmd.Flags().GetInt("pages")

		if sort != "" && !anilist.ValidSort(sort) {
			return fmt.Errorf("unsupported sort %q", sort)
		}

		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		feed.SetFilter(cmd.Context(), anilist.FilterParams{
			Genre:  genre,
			Year:   year,
			Season: strings.ToUpper(season),
			Sort:   sort,
		})
		for i := 1; i < pages; i++ {
			feed.LoadMore(cmd.Context(), browse.SectionFiltered)
		}

		results := feed.FilterResults()
		if len(results) == 0 {
			fmt.Println("No results.")
			return nil
		}
		printMediaList(results)
		return nil
	},
}

var animeCmd = &cobra.Command{
	Use:   "anime <id>",
	Short: "Show one anime with characters and recommendations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		feed, sess := newFeed(cmd.Context())
		defer sess.Close()

		view := feed.AnimeDetail(cmd.Context(), id)
		if view.Detail == nil {
			fmt.Println("Anime not available.")
			return nil
		}

		d := view.Detail
		fmt.Printf("%s (#%d)\n", d.Title.Display(), d.ID)
		fmt.Printf("  Format: %s  Status: %s  Score: %s\n", d.Format, d.Status, strings.TrimSpace(formatScore(d.AverageScore)))
		if d.Season != "" {
			fmt.Printf("  Season: %s %d\n", d.Season, d.SeasonYear)
		}
		if d.Episodes != nil {
			fmt.Printf("  Episodes: %d (%d min)\n", *d.Episodes, d.Duration)
		}
		if len(d.Genres) > 0 {
			fmt.Printf("  Genres: %s\n", strings.Join(d.Genres, ", "))
		}
		if len(d.Studios.Nodes) > 0 {
			names := make([]string, 0, len(d.Studios.Nodes))
			for _, s := range d.Studios.Nodes {
				names = append(names, s.Name)
			}
			fmt.Printf("  Studios: %s\n", strings.Join(names, ", "))
		}
		if cover := imageproxy.ProxiedURL(d.CoverImage.ExtraLarge); cover != "" {
			fmt.Printf("  Cover: %s\n", cover)
		}
		if view.Status != "" {
			fmt.Printf("  Bookmarked: %s\n", view.Status)
		}

		if len(d.Characters.Edges) > 0 {
			fmt.Println("\nCHARACTERS")
			for _, edge := range d.Characters.Edges {
				fmt.Printf("  %-8d %-10s %s\n", edge.Node.ID, strings.ToLower(edge.Role), edge.Node.Name.Full)
			}
		}
		if len(d.Recommendations.Nodes) > 0 {
			fmt.Println("\nRECOMMENDATIONS")
			for _, rec := range d.Recommendations.Nodes {
				fmt.Printf("  %-8d %s\n", rec.MediaRecommendation.ID, rec.MediaRecommendation.Title.Display())
			}
		}
		return nil
	},
}

var characterCmd = &cobra.Command{
	Use:   "character <id>",
	Short: "Show one character with their appearances",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		detail := api.CharacterDetail(cmd.Context(), id)
		if detail == nil {
			fmt.Println("Character not available.")
			return nil
		}

		fmt.Printf("%s (#%d)\n", detail.Name.Full, detail.ID)
		if detail.Gender != "" {
			fmt.Printf("  Gender: %s\n", detail.Gender)
		}
		if detail.Age != "" {
			fmt.Printf("  Age: %s\n", detail.Age)
		}
		if img := imageproxy.ProxiedURL(detail.Image.Large); img != "" {
			fmt.Printf("  Image: %s\n", img)
		}
		if len(detail.Media.Nodes) > 0 {
			fmt.Println("\nAPPEARS IN")
			printMediaList(detail.Media.Nodes)
		}
		return nil
	},
}

var studioCmd = &cobra.Command{
	Use:   "studio <id>",
	Short: "Show one studio with a page of its productions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		sort, _ := cmd.Flags().GetString("sort")
		if sort != "" && !anilist.ValidSort(sort) {
			return fmt.Errorf("unsupported sort %q", sort)
		}

		detail := api.StudioDetail(cmd.Context(), anilist.StudioParams{ID: id, Page: page, Sort: sort})
		if detail == nil {
			fmt.Println("Studio not available.")
			return nil
		}

		fmt.Printf("%s (#%d)\n", detail.Name, detail.ID)
		fmt.Println("\nPRODUCTIONS")
		printMediaList(detail.Media.Nodes)
		if detail.Media.PageInfo.HasNextPage {
			fmt.Printf("\nMore available: --page %d\n", page+1)
		}
		return nil
	},
}

func parseID(raw string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func init() {
	searchCmd.Flags().Int("pages", 1, "Number of result pages to accumulate")
	filterCmd.Flags().String("genre", "", "Genre to filter by")
	filterCmd.Flags().Int("year", 0, "Release year to filter by")
	filterCmd.Flags().String("season", "", "Season to filter by (WINTER, SPRING, SUMMER, FALL)")
	filterCmd.Flags().String("sort", "", "Sort order (POPULARITY_DESC, TRENDING_DESC, SCORE_DESC, FAVOURITES_DESC, START_DATE_DESC)")
	filterCmd.Flags().Int("pages", 1, "Number of result pages to accumulate")
	studioCmd.Flags().Int("page", 1, "Catalog page to show")
	studioCmd.Flags().String("sort", "", "Sort order (POPULARITY_DESC, TRENDING_DESC, SCORE_DESC, FAVOURITES_DESC, START_DATE_DESC)")

	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(animeCmd)
	rootCmd.AddCommand(characterCmd)
	rootCmd.AddCommand(studioCmd)
}
