package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// AddComment handles POST /v1/comments
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	node, err := h.services.Comment.Add(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": node})
}

// ListComments handles GET /v1/comments/post/:post_id?page&limit
func (h *CommentHandler) ListComments(c *gin.Context) {
	page, limit := pageParams(c)

	result, err := h.services.Comment.ListByPost(c.Request.Context(), currentUser(c), c.Param("post_id"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateComment handles PATCH /v1/comments/:comment_id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	comment, err := h.services.Comment.Update(c.Request.Context(), currentUser(c), c.Param("comment_id"), req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /v1/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	result, err := h.services.Comment.Delete(c.Request.Context(), currentUser(c), c.Param("comment_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
