package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"animehub/internal/api/dto"
	"animehub/internal/api/service"
)

type BookmarkHandler struct {
	svc service.BookmarkService
}

func NewBookmarkHandler(svc service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{svc: svc}
}

func (h *BookmarkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/", h.Set)
	rg.GET("/", h.List)
	rg.GET("/:anime_id", h.Status)
	rg.DELETE("/:anime_id", h.Remove)
}

// Set creates or overwrites the caller's watch status for one anime.
func (h *BookmarkHandler) Set(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.SetBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bookmark, err := h.svc.SetStatus(ctx, userID, service.AnimeSnapshot{
		AnimeID: req.AnimeID,
		Title:   req.AnimeTitle,
		Image:   req.AnimeImage,
		Score:   req.AnimeScore,
		Format:  req.AnimeFormat,
	}, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watch status"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkResponse(bookmark))
}

// Status reports the watch status for one anime. A pair with no bookmark is
// a 200 with an empty status, not a 404.
func (h *BookmarkHandler) Status(c *gin.Context) {
	userID := c.GetString("userID")

	animeID, err := strconv.Atoi(c.Param("anime_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bookmark, err := h.svc.GetStatus(ctx, userID, animeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.BookmarkStatusResponse{AnimeID: animeID}
	if bookmark != nil {
		resp.Status = bookmark.Status
	}
	c.JSON(http.StatusOK, resp)
}

// Remove deletes the caller's bookmark for one anime; absent rows succeed.
func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID := c.GetString("userID")

	animeID, err := strconv.Atoi(c.Param("anime_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, animeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns all of the caller's bookmarks, newest first.
func (h *BookmarkHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	bookmarks, err := h.svc.ListAll(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookmarkListResponse(bookmarks))
}
