package service

import (
	"context"

	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/lost-and-found-api/pkg/push"
	"github.com/rs/zerolog"
)

// PostService defines the interface for post operations
type PostService interface {
	Create(ctx context.Context, requester *models.User, req *models.CreatePostRequest) (*models.PostView, error)
	GetByID(ctx context.Context, id string) (*models.PostView, error)
	List(ctx context.Context, filter *models.PostFilter, page, limit int) ([]*models.PostView, models.Pagination, error)
	Update(ctx context.Context, requester *models.User, id string, req *models.UpdatePostRequest) (*models.PostView, error)
	UpdateStatus(ctx context.Context, requester *models.User, id, status string) (*models.Post, error)
	Delete(ctx context.Context, requester *models.User, id string) error
}

// CommentService defines the interface for the threaded comment subsystem
type CommentService interface {
	Add(ctx context.Context, requester *models.User, req *models.AddCommentRequest) (*models.CommentNode, error)
	ListByPost(ctx context.Context, requester *models.User, postID string, page, limit int) (*models.CommentPage, error)
	Update(ctx context.Context, requester *models.User, commentID, content string) (*models.Comment, error)
	Delete(ctx context.Context, requester *models.User, commentID string) (*models.DeleteCommentResult, error)
}

// ClaimService defines the interface for claim operations
type ClaimService interface {
	Create(ctx context.Context, requester *models.User, req *models.CreateClaimRequest) (*models.ClaimView, error)
	ListByPost(ctx context.Context, requester *models.User, postID, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error)
	ListMine(ctx context.Context, requester *models.User, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error)
	ListOnMyPosts(ctx context.Context, requester *models.User, status string, page, limit int) ([]*models.ClaimView, models.Pagination, error)
	UpdateStatus(ctx context.Context, requester *models.User, claimID, status string) (*models.ClaimView, error)
	Delete(ctx context.Context, requester *models.User, claimID string) error
}

// SavedPostService defines the interface for bookmark operations
type SavedPostService interface {
	Save(ctx context.Context, requester *models.User, postID string) (*models.SavedPost, error)
	Unsave(ctx context.Context, requester *models.User, postID string) error
	ListMine(ctx context.Context, requester *models.User, page, limit int) ([]*models.SavedPostView, models.Pagination, error)
	IsSaved(ctx context.Context, requester *models.User, postID string) (bool, error)
}

// NotificationService defines the interface for the in-app notification feed
type NotificationService interface {
	ListMine(ctx context.Context, requester *models.User, page, limit int) (*models.NotificationPage, error)
	UnreadCount(ctx context.Context, requester *models.User) (int, error)
	MarkRead(ctx context.Context, requester *models.User, notificationID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, requester *models.User) (int, error)
	ClearAll(ctx context.Context, requester *models.User) (int, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	Create(ctx context.Context, requester *models.User, req *models.CreateCategoryRequest) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
}

// StatsService exposes entity counts for the metrics endpoint
type StatsService interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// Services holds all service interfaces
type Services struct {
	Post         PostService
	Comment      CommentService
	Claim        ClaimService
	SavedPost    SavedPostService
	Notification NotificationService
	Category     CategoryService
	Stats        StatsService
	Dispatcher   *Dispatcher
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, sender push.Sender, log zerolog.Logger) *Services {
	dispatcher := NewDispatcher(repos.Notification, repos.User, sender, &cfg.Push, log)

	return &Services{
		Post:         newPostService(repos, log),
		Comment:      newCommentService(repos, dispatcher, &cfg.Comments, log),
		Claim:        newClaimService(repos, dispatcher, log),
		SavedPost:    newSavedPostService(repos, log),
		Notification: newNotificationService(repos.Notification, log),
		Category:     newCategoryService(repos.Category, log),
		Stats:        newStatsService(repos),
		Dispatcher:   dispatcher,
	}
}
