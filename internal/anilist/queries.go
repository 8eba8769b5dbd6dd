package anilist

// Fixed-text GraphQL documents. Only variables vary per call.

const homeQuery = `
query ($trendingPage: Int, $popularPage: Int, $upcomingPage: Int) {
    trending: Page(page: $trendingPage, perPage: 24) {
        pageInfo {
            hasNextPage
        }
        media(sort: TRENDING_DESC, type: ANIME) {
            id
            title {
                english
                romaji
            }
            coverImage {
                extraLarge
                large
            }
            bannerImage
            averageScore
            genres
            episodes
            format
            description(asHtml: false)
            trailer {
                id
                site
            }
        }
    }
    popular: Page(page: $popularPage, perPage: 24) {
        pageInfo {
            hasNextPage
        }
        media(sort: POPULARITY_DESC, type: ANIME) {
            id
            title {
                english
                romaji
            }
            coverImage {
                extraLarge
                large
            }
            bannerImage
            averageScore
            genres
            episodes
            format
        }
    }
    upcoming: Page(page: $upcomingPage, perPage: 24) {
        pageInfo {
            hasNextPage
        }
        media(sort: POPULARITY_DESC, type: ANIME, status: NOT_YET_RELEASED) {
            id
            title {
                english
                romaji
            }
            coverImage {
                extraLarge
                large
            }
            bannerImage
            averageScore
            genres
            episodes
            format
            startDate {
                year
                month
                day
            }
        }
    }
}
`

const searchQuery = `
query ($search: String, $page: Int) {
    Page(page: $page, perPage: 24) {
        pageInfo {
            hasNextPage
        }
        media(search: $search, sort: POPULARITY_DESC, type: ANIME) {
            id
            title {
                english
                romaji
            }
            coverImage {
                large
            }
            averageScore
            genres
            episodes
            format
        }
    }
}
`

const advancedFilterQuery = `
query ($page: Int, $genre: String, $year: Int, $season: MediaSeason, $sort: [MediaSort]) {
    Page(page: $page, perPage: 24) {
        pageInfo {
            hasNextPage
        }
        media(genre: $genre, seasonYear: $year, season: $season, sort: $sort, type: ANIME) {
            id
            title {
                english
                romaji
            }
            coverImage {
                extraLarge
                large
            }
            averageScore
            genres
            episodes
            format
        }
    }
}
`

const animeDetailQuery = `
query ($id: Int) {
    Media(id: $id, type: ANIME) {
        id
        title {
            english
            romaji
            native
        }
        coverImage {
            extraLarge
            large
        }
        bannerImage
        description(asHtml: true)
        format
        episodes
        duration
        status
        startDate {
            year
            month
            day
        }
        season
        seasonYear
        averageScore
        genres
        studios(isMain: true) {
            nodes {
                id
                name
            }
        }
        trailer {
            id
            site
        }
        recommendations(sort: RATING_DESC, perPage: 6) {
            nodes {
                mediaRecommendation {
                    id
                    title {
                        english
                        romaji
                    }
                    coverImage {
                        large
                    }
                }
            }
        }
        characters(sort: ROLE, perPage: 25) {
            edges {
                role
                node {
                    id
                    name {
                        full
                    }
                    image {
                        medium
                    }
                }
            }
        }
    }
}
`

const characterDetailQuery = `
query ($id: Int) {
    Character(id: $id) {
        id
        name {
            full
            native
        }
        image {
            large
            medium
        }
        description(asHtml: true)
        gender
        dateOfBirth {
            year
            month
            day
        }
        age
        bloodType
        media(type: ANIME, sort: POPULARITY_DESC, perPage: 24) {
            nodes {
                id
                title {
                    english
                    romaji
                }
                coverImage {
                    extraLarge
                    large
                }
                averageScore
                genres
                episodes
                format
            }
        }
    }
}
`

const studioDetailQuery = `
query ($id: Int, $page: Int, $sort: [MediaSort]) {
    Studio(id: $id) {
        id
        name
        isAnimationStudio
        media(page: $page, perPage: 20, sort: $sort, isMain: true) {
            pageInfo {
                hasNextPage
                lastPage
            }
            nodes {
                id
                title {
                    english
                    romaji
                }
                coverImage {
                    large
                }
                averageScore
                genres
                episodes
                format
                startDate {
                    year
                }
            }
        }
    }
}
`
