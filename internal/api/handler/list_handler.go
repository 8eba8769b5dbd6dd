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

type ListHandler struct {
	svc service.ListService
}

func NewListHandler(svc service.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Create)
	rg.GET("/", h.List)
	rg.POST("/:list_id/items", h.AddItem)
	rg.DELETE("/:list_id/items/:anime_id", h.RemoveItem)
}

func (h *ListHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.Create(ctx, userID, req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToListResponse(list))
}

func (h *ListHandler) List(c *gin.Context) {
	userID := c.GetString("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	lists, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToListsResponse(lists))
}

func (h *ListHandler) AddItem(c *gin.Context) {
	userID := c.GetString("userID")

	listID, err := strconv.ParseInt(c.Param("list_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list_id"})
		return
	}

	var req dto.AddListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.svc.AddItem(ctx, userID, listID, service.AnimeSnapshot{
		AnimeID: req.AnimeID,
		Title:   req.AnimeTitle,
		Image:   req.AnimeImage,
		Score:   req.AnimeScore,
		Format:  req.AnimeFormat,
	})
	if errors.Is(err, service.ErrListNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	if errors.Is(err, service.ErrNotListOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "list belongs to another user"})
		return
	}
	if errors.Is(err, service.ErrAlreadyInList) {
		c.JSON(http.StatusConflict, gin.H{"error": "anime already in list"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.ToListItemResponse(item))
}

func (h *ListHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("userID")

	listID, err := strconv.ParseInt(c.Param("list_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list_id"})
		return
	}
	animeID, err := strconv.Atoi(c.Param("anime_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err = h.svc.RemoveItem(ctx, userID, listID, animeID)
	if errors.Is(err, service.ErrListNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "list not found"})
		return
	}
	if errors.Is(err, service.ErrNotListOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "list belongs to another user"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
