package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIURL = "https://graphql.anilist.co"

	// Rate limiting: AniList allows ~90 requests per minute
	rateLimit = 1 // requests per second
	rateBurst = 5

	// Retry configuration
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 16 * time.Second
)

// Client issues GraphQL requests against the AniList API with rate
// limiting and bounded retry. It is safe for concurrent use.
type Client struct {
	apiURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	retryDelay  time.Duration
}

// NewClient creates a client for the public AniList endpoint.
func NewClient() *Client {
	return NewClientWithURL(defaultAPIURL)
}

// NewClientWithURL creates a client against a specific endpoint URL.
func NewClientWithURL(apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiURL:      apiURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		retryDelay:  initialDelay,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GraphQLRequest is the request envelope: a fixed query document plus variables.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse is the response envelope.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError is one entry of the response errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// Home fetches the three home sections for the given page triple.
func (c *Client) Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) (*HomeData, error) {
	variables := map[string]interface{}{
		"trendingPage": trendingPage,
		"popularPage":  popularPage,
		"upcomingPage": upcomingPage,
	}

	var result HomeData
	if err := c.doRequest(ctx, homeQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch home sections: %w", err)
	}
	return &result, nil
}

// Search fetches one page of search results sorted by popularity.
func (c *Client) Search(ctx context.Context, text string, page int) (*MediaPage, error) {
	variables := map[string]interface{}{
		"search": text,
		"page":   page,
	}

	var result struct {
		Page MediaPage `json:"Page"`
	}
	if err := c.doRequest(ctx, searchQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to search anime: %w", err)
	}
	return &result.Page, nil
}

// Filter fetches one page of the advanced-filter view.
func (c *Client) Filter(ctx context.Context, p FilterParams) (*MediaPage, error) {
	sort := p.Sort
	if sort == "" {
		sort = SortPopularity
	}
	variables := map[string]interface{}{
		"page": p.Page,
		"sort": []string{sort},
	}
	// AniList treats a null variable as "no constraint"; omit unset filters
	if p.Genre != "" {
		variables["genre"] = p.Genre
	}
	if p.Year != 0 {
		variables["year"] = p.Year
	}
	if p.Season != "" {
		variables["season"] = p.Season
	}

	var result struct {
		Page MediaPage `json:"Page"`
	}
	if err := c.doRequest(ctx, advancedFilterQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch filtered anime: %w", err)
	}
	return &result.Page, nil
}

// AnimeDetail fetches one anime with characters and recommendations.
func (c *Client) AnimeDetail(ctx context.Context, id int) (*MediaDetail, error) {
	variables := map[string]interface{}{"id": id}

	var result struct {
		Media MediaDetail `json:"Media"`
	}
	if err := c.doRequest(ctx, animeDetailQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch anime details: %w", err)
	}
	return &result.Media, nil
}

// CharacterDetail fetches one character with its anime appearances.
func (c *Client) CharacterDetail(ctx context.Context, id int) (*CharacterDetail, error) {
	variables := map[string]interface{}{"id": id}

	var result struct {
		Character CharacterDetail `json:"Character"`
	}
	if err := c.doRequest(ctx, characterDetailQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch character details: %w", err)
	}
	return &result.Character, nil
}

// StudioDetail fetches one studio with one page of its catalog.
func (c *Client) StudioDetail(ctx context.Context, p StudioParams) (*StudioDetail, error) {
	sort := p.Sort
	if sort == "" {
		sort = SortPopularity
	}
	variables := map[string]interface{}{
		"id":   p.ID,
		"page": p.Page,
		"sort": []string{sort},
	}

	var result struct {
		Studio StudioDetail `json:"Studio"`
	}
	if err := c.doRequest(ctx, studioDetailQuery, variables, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch studio details: %w", err)
	}
	return &result.Studio, nil
}

// doRequest performs a GraphQL request with rate limiting and retry logic
func (c *Client) doRequest(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyJSON))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				log.Printf("[AniList] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, maxRetries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))

				// AniList signals rate limiting with Retry-After in seconds
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if retryDuration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						delay = retryDuration
					}
				}

				log.Printf("[AniList] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, maxRetries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
		}

		var gqlResp GraphQLResponse
		if err := json.Unmarshal(respBody, &gqlResp); err != nil {
			return fmt.Errorf("failed to parse GraphQL response: %w", err)
		}

		// A 200 can still carry a GraphQL error envelope
		if len(gqlResp.Errors) > 0 {
			errMsgs := make([]string, len(gqlResp.Errors))
			for i, e := range gqlResp.Errors {
				errMsgs[i] = e.Message
			}
			return fmt.Errorf("GraphQL errors: %v", errMsgs)
		}

		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return fmt.Errorf("failed to parse data: %w", err)
		}

		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || // 429
		statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
