package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// savedPostRepo is the concrete implementation of SavedPostRepository
type savedPostRepo struct {
	db *database.DB
}

// NewSavedPostRepo creates a new saved-post repository
func NewSavedPostRepo(db *database.DB) SavedPostRepository {
	return &savedPostRepo{db: db}
}

// Create inserts a new saved post
func (r *savedPostRepo) Create(ctx context.Context, saved *models.SavedPost) error {
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO saved_posts (id, user_id, post_id, created_at) VALUES ($1, $2, $3, $4)`,
		saved.ID, saved.UserID, saved.PostID, saved.CreatedAt,
	)
	return err
}

// GetByUserAndPost retrieves a user's bookmark of a post, if any
func (r *savedPostRepo) GetByUserAndPost(ctx context.Context, userID, postID string) (*models.SavedPost, error) {
	var saved models.SavedPost
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, post_id, created_at FROM saved_posts WHERE user_id = $1 AND post_id = $2`,
		userID, postID,
	).Scan(&saved.ID, &saved.UserID, &saved.PostID, &saved.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Delete removes a bookmark, reporting whether one existed
func (r *savedPostRepo) Delete(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_posts WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// ListByUser returns a page of the user's bookmarks, newest first
func (r *savedPostRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.SavedPost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, post_id, created_at FROM saved_posts
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []*models.SavedPost
	for rows.Next() {
		var s models.SavedPost
		if err := rows.Scan(&s.ID, &s.UserID, &s.PostID, &s.CreatedAt); err != nil {
			return nil, err
		}
		saved = append(saved, &s)
	}

	return saved, rows.Err()
}

// CountByUser returns the number of posts the user has saved
func (r *savedPostRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_posts WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
