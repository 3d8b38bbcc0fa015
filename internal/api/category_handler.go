package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		services: services,
		log:      log.With().Str("handler", "category").Logger(),
	}
}

// ListCategories handles GET /v1/categories. Inactive categories are included
// only when ?all=true.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	categories, err := h.services.Category.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	category, err := h.services.Category.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}
