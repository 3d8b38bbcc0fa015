package repository

import (
	"context"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	Count(ctx context.Context) (int, error)
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, filter *models.PostFilter, limit, offset int) ([]*models.Post, error)
	CountFiltered(ctx context.Context, filter *models.PostFilter) (int, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// AddComments atomically adjusts the comment counter by delta,
	// floored at zero.
	AddComments(ctx context.Context, id string, delta int) error
	// AddClaims atomically adjusts the claim counter by delta, floored
	// at zero.
	AddClaims(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	// DeleteSubtree removes the comment and every descendant, returning
	// the number of rows removed (including the comment itself).
	DeleteSubtree(ctx context.Context, id string) (int, error)
	// ListRoots returns a page of the post's root comments, newest first.
	ListRoots(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error)
	CountRoots(ctx context.Context, postID string) (int, error)
	// ListByPost returns every comment of the post in one read, oldest
	// first, for in-memory tree assembly.
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// ClaimRepository defines the interface for claim data operations
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id string) (*models.Claim, error)
	GetByPostAndClaimer(ctx context.Context, postID, claimerID string) (*models.Claim, error)
	List(ctx context.Context, filter *models.ClaimFilter, limit, offset int) ([]*models.Claim, error)
	CountFiltered(ctx context.Context, filter *models.ClaimFilter) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SavedPostRepository defines the interface for saved-post data operations
type SavedPostRepository interface {
	Create(ctx context.Context, saved *models.SavedPost) error
	GetByUserAndPost(ctx context.Context, userID, postID string) (*models.SavedPost, error)
	Delete(ctx context.Context, userID, postID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.SavedPost, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Category, error)
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Notification, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	MarkSent(ctx context.Context, id string) error
	DeleteAllByUser(ctx context.Context, userID string) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User         UserRepository
	Post         PostRepository
	Comment      CommentRepository
	Claim        ClaimRepository
	SavedPost    SavedPostRepository
	Category     CategoryRepository
	Notification NotificationRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepo(db),
		Post:         NewPostRepo(db),
		Comment:      NewCommentRepo(db),
		Claim:        NewClaimRepo(db),
		SavedPost:    NewSavedPostRepo(db),
		Category:     NewCategoryRepo(db),
		Notification: NewNotificationRepo(db),
	}
}
