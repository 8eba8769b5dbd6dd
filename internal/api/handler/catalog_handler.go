package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"animehub/internal/anilist"
	"animehub/internal/catalog"
)

// CatalogHandler proxies the AniList catalog. Upstream failures surface as
// 200 responses with empty payloads, matching the catalog service contract:
// a browse client renders "no data" rather than an error page.
type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/home", h.Home)
	rg.GET("/search", h.Search)
	rg.GET("/filter", h.Filter)
	rg.GET("/anime/:id", h.AnimeDetail)
	rg.GET("/character/:id", h.CharacterDetail)
	rg.GET("/studio/:id", h.StudioDetail)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// Home serves the trending, popular, and upcoming sections for a page triple.
func (h *CatalogHandler) Home(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	data := h.svc.Home(ctx,
		queryInt(c, "trending_page", 1),
		queryInt(c, "popular_page", 1),
		queryInt(c, "upcoming_page", 1),
	)
	if data == nil {
		c.JSON(http.StatusOK, anilist.HomeData{})
		return
	}
	c.JSON(http.StatusOK, data)
}

// Search serves one live page of title search results.
func (h *CatalogHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	page := h.svc.Search(ctx, c.Query("q"), queryInt(c, "page", 1))
	c.JSON(http.StatusOK, page)
}

// Filter serves one page of the advanced-filter view.
func (h *CatalogHandler) Filter(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	params := anilist.FilterParams{
		Page:  queryInt(c, "page", 1),
		Genre: c.Query("genre"),
		Year:  queryInt(c, "year", 0),
	}
	params.Season = c.Query("season")
	if sort := c.Query("sort"); sort != "" && anilist.ValidSort(sort) {
		params.Sort = sort
	}

	page := h.svc.Filter(ctx, params)
	if page == nil {
		c.JSON(http.StatusOK, anilist.MediaPage{Media: []anilist.Media{}})
		return
	}
	c.JSON(http.StatusOK, page)
}

// AnimeDetail serves one anime with its characters and recommendations.
func (h *CatalogHandler) AnimeDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	detail := h.svc.AnimeDetail(ctx, id)
	if detail == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CharacterDetail serves one character.
func (h *CatalogHandler) CharacterDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	detail := h.svc.CharacterDetail(ctx, id)
	if detail == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// StudioDetail serves one studio with one page of its catalog.
func (h *CatalogHandler) StudioDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	params := anilist.StudioParams{
		ID:   id,
		Page: queryInt(c, "page", 1),
	}
	if sort := c.Query("sort"); sort != "" && anilist.ValidSort(sort) {
		params.Sort = sort
	}

	detail := h.svc.StudioDetail(ctx, params)
	if detail == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, detail)
}
