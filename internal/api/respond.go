package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// respondError writes the JSON error envelope. Domain errors keep their code
// and message; anything else is logged and reported as an opaque internal
// error.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if domainErr := apperr.As(err); domainErr != nil {
		c.JSON(apperr.Status(err), gin.H{
			"error": gin.H{"code": string(domainErr.Code), "message": domainErr.Message},
		})
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "internal", "message": "something went wrong"},
	})
}

// pageParams parses page and limit query parameters with sane bounds
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
