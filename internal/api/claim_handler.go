package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// ClaimHandler handles claim endpoints
type ClaimHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(services *service.Services, log zerolog.Logger) *ClaimHandler {
	return &ClaimHandler{
		services: services,
		log:      log.With().Str("handler", "claim").Logger(),
	}
}

// CreateClaim handles POST /v1/claims
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var req models.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	claim, err := h.services.Claim.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"claim": claim})
}

// ListClaimsByPost handles GET /v1/claims/post/:post_id
func (h *ClaimHandler) ListClaimsByPost(c *gin.Context) {
	page, limit := pageParams(c)

	claims, pagination, err := h.services.Claim.ListByPost(c.Request.Context(), currentUser(c), c.Param("post_id"), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims, "pagination": pagination})
}

// ListMyClaims handles GET /v1/claims/my-claims
func (h *ClaimHandler) ListMyClaims(c *gin.Context) {
	page, limit := pageParams(c)

	claims, pagination, err := h.services.Claim.ListMine(c.Request.Context(), currentUser(c), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims, "pagination": pagination})
}

// ListClaimsOnMyPosts handles GET /v1/claims/on-my-posts
func (h *ClaimHandler) ListClaimsOnMyPosts(c *gin.Context) {
	page, limit := pageParams(c)

	claims, pagination, err := h.services.Claim.ListOnMyPosts(c.Request.Context(), currentUser(c), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims, "pagination": pagination})
}

// UpdateClaimStatus handles PATCH /v1/claims/:claim_id/status
func (h *ClaimHandler) UpdateClaimStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperr.InvalidInput("invalid request body"))
		return
	}

	claim, err := h.services.Claim.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("claim_id"), req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim})
}

// DeleteClaim handles DELETE /v1/claims/:claim_id
func (h *ClaimHandler) DeleteClaim(c *gin.Context) {
	if err := h.services.Claim.Delete(c.Request.Context(), currentUser(c), c.Param("claim_id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "claim withdrawn"})
}
