package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/lost-and-found-api/internal/service"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	postHandler := NewPostHandler(services, log)
	commentHandler := NewCommentHandler(services, log)
	claimHandler := NewClaimHandler(services, log)
	savedPostHandler := NewSavedPostHandler(services, log)
	notificationHandler := NewNotificationHandler(services, log)
	categoryHandler := NewCategoryHandler(services, log)
	userHandler := NewUserHandler(log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// Public API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/posts", postHandler.ListPosts)
		v1.GET("/posts/:post_id", postHandler.GetPost)
		v1.GET("/categories", categoryHandler.ListCategories)
	}

	// Authenticated API v1
	auth := router.Group("/v1")
	auth.Use(authMiddleware(cfg.Auth.JWTSecret, repos.User, log))
	{
		comments := auth.Group("/comments")
		{
			comments.POST("", commentHandler.AddComment)
			comments.GET("/post/:post_id", commentHandler.ListComments)
			comments.PATCH("/:comment_id", commentHandler.UpdateComment)
			comments.DELETE("/:comment_id", commentHandler.DeleteComment)
		}

		posts := auth.Group("/posts")
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("/my-posts", postHandler.ListMyPosts)
			posts.PATCH("/:post_id", postHandler.UpdatePost)
			posts.PATCH("/:post_id/status", postHandler.UpdatePostStatus)
			posts.DELETE("/:post_id", postHandler.DeletePost)
		}

		claims := auth.Group("/claims")
		{
			claims.POST("", claimHandler.CreateClaim)
			claims.GET("/post/:post_id", claimHandler.ListClaimsByPost)
			claims.GET("/my-claims", claimHandler.ListMyClaims)
			claims.GET("/on-my-posts", claimHandler.ListClaimsOnMyPosts)
			claims.PATCH("/:claim_id/status", claimHandler.UpdateClaimStatus)
			claims.DELETE("/:claim_id", claimHandler.DeleteClaim)
		}

		savedPosts := auth.Group("/saved-posts")
		{
			savedPosts.POST("/save/:post_id", savedPostHandler.SavePost)
			savedPosts.DELETE("/unsave/:post_id", savedPostHandler.UnsavePost)
			savedPosts.GET("/my-saved-posts", savedPostHandler.ListMySavedPosts)
			savedPosts.GET("/check/:post_id", savedPostHandler.CheckSaved)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PATCH("/:notification_id/read", notificationHandler.MarkRead)
			notifications.PATCH("/read-all", notificationHandler.MarkAllRead)
			notifications.DELETE("", notificationHandler.ClearAll)
		}

		auth.POST("/categories", categoryHandler.CreateCategory)
		auth.GET("/users/me", userHandler.Me)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "lost-and-found-api",
	})
}

// metricsHandler returns entity counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := services.Stats.Counts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "internal", "message": "something went wrong"},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"database":  counts,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{"code": "internal", "message": "something went wrong"},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
