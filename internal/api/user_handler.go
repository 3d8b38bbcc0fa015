package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	log zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(log zerolog.Logger) *UserHandler {
	return &UserHandler{log: log.With().Str("handler", "user").Logger()}
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}
