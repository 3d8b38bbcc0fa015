package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// SavedPostHandler handles bookmark endpoints
type SavedPostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(services *service.Services, log zerolog.Logger) *SavedPostHandler {
	return &SavedPostHandler{
		services: services,
		log:      log.With().Str("handler", "saved_post").Logger(),
	}
}

// SavePost handles POST /v1/saved-posts/save/:post_id
func (h *SavedPostHandler) SavePost(c *gin.Context) {
	saved, err := h.services.SavedPost.Save(c.Request.Context(), currentUser(c), c.Param("post_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"savedPost": saved})
}

// UnsavePost handles DELETE /v1/saved-posts/unsave/:post_id
func (h *SavedPostHandler) UnsavePost(c *gin.Context) {
	if err := h.services.SavedPost.Unsave(c.Request.Context(), currentUser(c), c.Param("post_id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post unsaved"})
}

// ListMySavedPosts handles GET /v1/saved-posts/my-saved-posts
func (h *SavedPostHandler) ListMySavedPosts(c *gin.Context) {
	page, limit := pageParams(c)

	saved, pagination, err := h.services.SavedPost.ListMine(c.Request.Context(), currentUser(c), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savedPosts": saved, "pagination": pagination})
}

// CheckSaved handles GET /v1/saved-posts/check/:post_id
func (h *SavedPostHandler) CheckSaved(c *gin.Context) {
	saved, err := h.services.SavedPost.IsSaved(c.Request.Context(), currentUser(c), c.Param("post_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"isSaved": saved})
}
