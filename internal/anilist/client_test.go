package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClientWithURL(url)
	c.retryDelay = time.Millisecond
	return c
}

func TestHomeParsesSections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(2), req.Variables["trendingPage"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{
			"trending":{"pageInfo":{"hasNextPage":true},"media":[{"id":1,"title":{"english":"A"},"averageScore":83,"format":"TV"}]},
			"popular":{"pageInfo":{"hasNextPage":false},"media":[{"id":2,"title":{"romaji":"B"}}]},
			"upcoming":{"pageInfo":{"hasNextPage":true},"media":[]}
		}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Home(context.Background(), 2, 1, 1)
	require.NoError(t, err)

	assert.True(t, got.Trending.PageInfo.HasNextPage)
	require.Len(t, got.Trending.Media, 1)
	assert.Equal(t, 1, got.Trending.Media[0].ID)
	require.NotNil(t, got.Trending.Media[0].AverageScore)
	assert.Equal(t, 83, *got.Trending.Media[0].AverageScore)
	assert.Equal(t, "B", got.Popular.Media[0].Title.Display())
	assert.False(t, got.Popular.PageInfo.HasNextPage)
	assert.Empty(t, got.Upcoming.Media)
}

func TestSearchSendsVariables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Naruto", req.Variables["search"])
		assert.Equal(t, float64(3), req.Variables["page"])

		w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"media":[{"id":20,"title":{"english":"Naruto"}}]}}}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).Search(context.Background(), "Naruto", 3)
	require.NoError(t, err)
	require.Len(t, page.Media, 1)
	assert.Equal(t, 20, page.Media[0].ID)
}

func TestFilterOmitsUnsetVariables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Action", req.Variables["genre"])
		assert.NotContains(t, req.Variables, "year")
		assert.NotContains(t, req.Variables, "season")
		assert.Equal(t, []interface{}{"SCORE_DESC"}, req.Variables["sort"])

		w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":true},"media":[]}}}`))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL).Filter(context.Background(), FilterParams{
		Page:  1,
		Genre: "Action",
		Sort:  SortScore,
	})
	require.NoError(t, err)
	assert.True(t, page.PageInfo.HasNextPage)
}

func TestGraphQLErrorEnvelopeIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null,"errors":[{"message":"Not Found."}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).AnimeDetail(context.Background(), 404)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found.")
}

func TestRetryOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":{"Media":{"id":5,"title":{"english":"C"}}}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).AnimeDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 5, got.ID)
}

func TestNoRetryOnBadRequest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestValidSort(t *testing.T) {
	assert.True(t, ValidSort(SortPopularity))
	assert.True(t, ValidSort(SortNewest))
	assert.False(t, ValidSort("RANDOM"))
	assert.False(t, ValidSort(""))
}
