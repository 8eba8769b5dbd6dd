// Package client is the HTTP client for the animehub API server. It backs
// the CLI's session, catalog, and bookmark plumbing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"animehub/internal/anilist"
	"animehub/internal/api/dto"
	"animehub/internal/browse"
	"animehub/internal/session"
)

// HTTPClient talks to the animehub API server. It satisfies the session
// backend, the browse catalog, and the bookmark store interfaces so the CLI
// can inject one client everywhere.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string

	// OnTokenChange is invoked whenever the token pair changes, so the
	// caller can persist it.
	OnTokenChange func(accessToken, refreshToken string)
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// SetTokens seeds the client with a persisted token pair.
func (c *HTTPClient) SetTokens(accessToken, refreshToken string) {
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

func (c *HTTPClient) setTokens(accessToken, refreshToken string) {
	c.accessToken = accessToken
	c.refreshToken = refreshToken
	if c.OnTokenChange != nil {
		c.OnTokenChange(accessToken, refreshToken)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(response.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, response.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(out)
}

// --- auth ---

// Register creates a new account.
func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*dto.RegisterResponse, error) {
	var result dto.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates and stores the returned token pair.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.setTokens(result.AccessToken, result.RefreshToken)
	return &result, nil
}

// Logout revokes the refresh token and clears the stored pair.
func (c *HTTPClient) Logout(ctx context.Context) error {
	var err error
	if c.refreshToken != "" {
		err = c.do(ctx, http.MethodPost, "/auth/logout", dto.RefreshTokenRequest{
			RefreshToken: c.refreshToken,
		}, nil)
	}
	c.setTokens("", "")
	return err
}

// --- session.Backend ---

// CurrentSession probes the server for the identity behind the stored
// access token. No stored token means signed out, not an error.
func (c *HTTPClient) CurrentSession(ctx context.Context) (*session.User, error) {
	if c.accessToken == "" {
		return nil, nil
	}

	var result dto.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &result); err != nil {
		return nil, err
	}
	return &session.User{ID: result.UserID, Email: result.Email, Username: result.Username}, nil
}

// SignUp registers and signs in. The username defaults to the email's local
// part; accounts can rename via the profile afterwards.
func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*session.User, error) {
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	if _, err := c.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return c.SignIn(ctx, email, password)
}

// SignIn authenticates and returns the session user.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*session.User, error) {
	result, err := c.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &session.User{ID: result.UserID, Email: result.Email, Username: result.Username}, nil
}

// SignOut revokes the session server-side and clears local tokens.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.Logout(ctx)
}

// --- browse.Catalog ---

// Home fetches the three home sections, or nil when the call fails.
func (c *HTTPClient) Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) *anilist.HomeData {
	path := fmt.Sprintf("/catalog/home?trending_page=%d&popular_page=%d&upcoming_page=%d",
		trendingPage, popularPage, upcomingPage)

	var data anilist.HomeData
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		log.Printf("[catalog] home fetch failed: %v", err)
		return nil
	}
	return &data
}

// Search fetches one page of search results, or an empty page on failure.
func (c *HTTPClient) Search(ctx context.Context, text string, page int) *anilist.MediaPage {
	path := fmt.Sprintf("/catalog/search?q=%s&page=%d", url.QueryEscape(text), page)

	var result anilist.MediaPage
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		log.Printf("[catalog] search failed: %v", err)
		return &anilist.MediaPage{Media: []anilist.Media{}}
	}
	return &result
}

// Filter fetches one page of the advanced-filter view, or nil on failure.
func (c *HTTPClient) Filter(ctx context.Context, p anilist.FilterParams) *anilist.MediaPage {
	q := url.Values{}
	q.Set("page", fmt.Sprint(p.Page))
	if p.Genre != "" {
		q.Set("genre", p.Genre)
	}
	if p.Year != 0 {
		q.Set("year", fmt.Sprint(p.Year))
	}
	if p.Season != "" {
		q.Set("season", p.Season)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}

	var result anilist.MediaPage
	if err := c.do(ctx, http.MethodGet, "/catalog/filter?"+q.Encode(), nil, &result); err != nil {
		log.Printf("[catalog] filter fetch failed: %v", err)
		return nil
	}
	return &result
}

// AnimeDetail fetches one anime, or nil on failure.
func (c *HTTPClient) AnimeDetail(ctx context.Context, id int) *anilist.MediaDetail {
	var result anilist.MediaDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/catalog/anime/%d", id), nil, &result); err != nil {
		log.Printf("[catalog] anime detail fetch failed: %v", err)
		return nil
	}
	if result.ID == 0 {
		return nil
	}
	return &result
}

// CharacterDetail fetches one character, or nil on failure.
func (c *HTTPClient) CharacterDetail(ctx context.Context, id int) *anilist.CharacterDetail {
	var result anilist.CharacterDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/catalog/character/%d", id), nil, &result); err != nil {
		log.Printf("[catalog] character detail fetch failed: %v", err)
		return nil
	}
	if result.ID == 0 {
		return nil
	}
	return &result
}

// StudioDetail fetches one studio page, or nil on failure.
func (c *HTTPClient) StudioDetail(ctx context.Context, p anilist.StudioParams) *anilist.StudioDetail {
	q := url.Values{}
	q.Set("page", fmt.Sprint(p.Page))
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	path := fmt.Sprintf("/catalog/studio/%d?%s", p.ID, q.Encode())

	var result anilist.StudioDetail
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		log.Printf("[catalog] studio detail fetch failed: %v", err)
		return nil
	}
	if result.ID == 0 {
		return nil
	}
	return &result
}

// --- browse.BookmarkStore ---

// Status returns the stored watch status for one anime; "" means absent.
func (c *HTTPClient) Status(ctx context.Context, animeID int) (string, error) {
	var result dto.BookmarkStatusResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookmarks/%d", animeID), nil, &result); err != nil {
		return "", err
	}
	return result.Status, nil
}

// SetStatus upserts the watch status with a snapshot of the anime.
func (c *HTTPClient) SetStatus(ctx context.Context, anime anilist.Media, status string) (*browse.BookmarkRecord, error) {
	var result dto.BookmarkResponse
	err := c.do(ctx, http.MethodPut, "/bookmarks/", dto.SetBookmarkRequest{
		AnimeID:     anime.ID,
		Status:      status,
		AnimeTitle:  anime.Title.Display(),
		AnimeImage:  anime.CoverImage.Large,
		AnimeScore:  anime.AverageScore,
		AnimeFormat: anime.Format,
	}, &result)
	if err != nil {
		return nil, err
	}
	return bookmarkRecord(result), nil
}

// Remove deletes the bookmark; absent rows succeed.
func (c *HTTPClient) Remove(ctx context.Context, animeID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", animeID), nil, nil)
}

// ListAll returns every bookmark, newest first.
func (c *HTTPClient) ListAll(ctx context.Context) ([]browse.BookmarkRecord, error) {
	var result dto.BookmarkListResponse
	if err := c.do(ctx, http.MethodGet, "/bookmarks/", nil, &result); err != nil {
		return nil, err
	}
	records := make([]browse.BookmarkRecord, 0, len(result.Items))
	for _, item := range result.Items {
		records = append(records, *bookmarkRecord(item))
	}
	return records, nil
}

func bookmarkRecord(item dto.BookmarkResponse) *browse.BookmarkRecord {
	return &browse.BookmarkRecord{
		AnimeID:     item.AnimeID,
		AnimeTitle:  item.AnimeTitle,
		AnimeImage:  item.AnimeImage,
		AnimeScore:  item.AnimeScore,
		AnimeFormat: item.AnimeFormat,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
	}
}

// --- profile ---

// Profile fetches the caller's profile.
func (c *HTTPClient) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var result dto.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/profile/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfile applies a partial profile update.
func (c *HTTPClient) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	var result dto.ProfileResponse
	if err := c.do(ctx, http.MethodPatch, "/profile/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- lists ---

// CreateList creates a named list.
func (c *HTTPClient) CreateList(ctx context.Context, name, description string) (*dto.ListResponse, error) {
	var result dto.ListResponse
	err := c.do(ctx, http.MethodPost, "/lists/", dto.CreateListRequest{
		Name:        name,
		Description: description,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Lists fetches every list with its items.
func (c *HTTPClient) Lists(ctx context.Context) (*dto.ListsResponse, error) {
	var result dto.ListsResponse
	if err := c.do(ctx, http.MethodGet, "/lists/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddListItem adds an anime to a list.
func (c *HTTPClient) AddListItem(ctx context.Context, listID int64, anime anilist.Media) (*dto.ListItemResponse, error) {
	var result dto.ListItemResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/lists/%d/items", listID), dto.AddListItemRequest{
		AnimeID:     anime.ID,
		AnimeTitle:  anime.Title.Display(),
		AnimeImage:  anime.CoverImage.Large,
		AnimeScore:  anime.AverageScore,
		AnimeFormat: anime.Format,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveListItem removes an anime from a list.
func (c *HTTPClient) RemoveListItem(ctx context.Context, listID int64, animeID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/lists/%d/items/%d", listID, animeID), nil, nil)
}
