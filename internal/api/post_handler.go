package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// PostHandler handles post endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// CreatePost handles POST /v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost handles GET /v1/posts/:post_id
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.services.Post.GetByID(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// ListPosts handles GET /v1/posts with optional filters
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, limit := pageParams(c)
	filter := &models.PostFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	posts, pagination, err := h.services.Post.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "pagination": pagination})
}

// ListMyPosts handles GET /v1/posts/my-posts
func (h *PostHandler) ListMyPosts(c *gin.Context) {
	page, limit := pageParams(c)
	filter := &models.PostFilter{
		UserID: currentUser(c).ID,
		Status: c.Query("status"),
	}

	posts, pagination, err := h.services.Post.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "pagination": pagination})
}

// UpdatePost handles PATCH /v1/posts/:post_id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	post, err := h.services.Post.Update(c.Request.Context(), currentUser(c), c.Param("post_id"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePostStatus handles PATCH /v1/posts/:post_id/status
func (h *PostHandler) UpdatePostStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	post, err := h.services.Post.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("post_id"), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost handles DELETE /v1/posts/:post_id
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.services.Post.Delete(c.Request.Context(), currentUser(c), c.Param("post_id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
