package anilist

// Response shapes for the subset of the AniList schema this project queries.
// Media identity is the AniList id; entries are never mutated after decode.

type MediaTitle struct {
	English string `json:"english"`
	Romaji  string `json:"romaji"`
	Native  string `json:"native"`
}

// Display returns the preferred display title: english, then romaji, then native.
func (t MediaTitle) Display() string {
	if t.English != "" {
		return t.English
	}
	if t.Romaji != "" {
		return t.Romaji
	}
	return t.Native
}

type CoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
}

type Trailer struct {
	ID   string `json:"id"`
	Site string `json:"site"`
}

type FuzzyDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Media is the summary shape shared by every list view.
// AverageScore is an integer percent (0-100); nil when AniList has no score.
type Media struct {
	ID           int        `json:"id"`
	Title        MediaTitle `json:"title"`
	CoverImage   CoverImage `json:"coverImage"`
	BannerImage  string     `json:"bannerImage"`
	AverageScore *int       `json:"averageScore"`
	Genres       []string   `json:"genres"`
	Episodes     *int       `json:"episodes"`
	Format       string     `json:"format"`
	Description  string     `json:"description,omitempty"`
	Trailer      *Trailer   `json:"trailer,omitempty"`
	StartDate    *FuzzyDate `json:"startDate,omitempty"`
}

type PageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
	LastPage    int  `json:"lastPage,omitempty"`
}

// MediaPage is one page of a catalog slice plus its pagination info.
type MediaPage struct {
	PageInfo PageInfo `json:"pageInfo"`
	Media    []Media  `json:"media"`
}

// HomeData carries the three independently paginated home sections.
type HomeData struct {
	Trending MediaPage `json:"trending"`
	Popular  MediaPage `json:"popular"`
	Upcoming MediaPage `json:"upcoming"`
}

type StudioRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CharacterName struct {
	Full   string `json:"full"`
	Native string `json:"native"`
}

type CharacterImage struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

type CharacterRef struct {
	ID    int            `json:"id"`
	Name  CharacterName  `json:"name"`
	Image CharacterImage `json:"image"`
}

// CharacterEdge pairs a character with its role in one anime.
type CharacterEdge struct {
	Role string       `json:"role"`
	Node CharacterRef `json:"node"`
}

type RecommendationNode struct {
	MediaRecommendation Media `json:"mediaRecommendation"`
}

// MediaDetail is the full single-anime shape for the detail view.
type MediaDetail struct {
	Media
	Duration   int    `json:"duration"`
	Status     string `json:"status"`
	Season     string `json:"season"`
	SeasonYear int    `json:"seasonYear"`
	Studios    struct {
		Nodes []StudioRef `json:"nodes"`
	} `json:"studios"`
	Recommendations struct {
		Nodes []RecommendationNode `json:"nodes"`
	} `json:"recommendations"`
	Characters struct {
		Edges []CharacterEdge `json:"edges"`
	} `json:"characters"`
}

// CharacterDetail is the full single-character shape.
type CharacterDetail struct {
	ID          int            `json:"id"`
	Name        CharacterName  `json:"name"`
	Image       CharacterImage `json:"image"`
	Description string         `json:"description"`
	Gender      string         `json:"gender"`
	DateOfBirth FuzzyDate      `json:"dateOfBirth"`
	Age         string         `json:"age"`
	BloodType   string         `json:"bloodType"`
	Media       struct {
		Nodes []Media `json:"nodes"`
	} `json:"media"`
}

// StudioDetail is the full single-studio shape with one page of its catalog.
type StudioDetail struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	IsAnimationStudio bool  `json:"isAnimationStudio"`
	Media            struct {
		PageInfo PageInfo `json:"pageInfo"`
		Nodes    []Media  `json:"nodes"`
	} `json:"media"`
}

// FilterParams are the advanced-filter inputs. Sort is always the whole
// selection criterion; there is no secondary sort.
type FilterParams struct {
	Page   int
	Genre  string
	Year   int
	Season string
	Sort   string
}

// StudioParams select one page of a studio's catalog.
type StudioParams struct {
	ID   int
	Page int
	Sort string
}

// Sort values accepted by the advanced filter.
const (
	SortPopularity = "POPULARITY_DESC"
	SortTrending   = "TRENDING_DESC"
	SortScore      = "SCORE_DESC"
	SortFavourites = "FAVOURITES_DESC"
	SortNewest     = "START_DATE_DESC"
)

// ValidSort reports whether s is one of the supported filter sorts.
func ValidSort(s string) bool {
	switch s {
	case SortPopularity, SortTrending, SortScore, SortFavourites, SortNewest:
		return true
	}
	return false
}
