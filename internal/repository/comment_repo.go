package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, post_id, user_id, content, parent_comment_id, root_comment_id,
	is_edited, created_at, updated_at`

func scanComment(row interface{ Scan(...interface{}) error }) (*models.Comment, error) {
	var comment models.Comment
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.Content,
		&comment.ParentCommentID, &comment.RootCommentID,
		&comment.IsEdited, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, content, parent_comment_id,
			root_comment_id, is_edited, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content,
		comment.ParentCommentID, comment.RootCommentID, comment.IsEdited,
		comment.CreatedAt, comment.UpdatedAt,
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// Update persists edited content and the edited flag. Parent and root
// pointers are immutable after creation.
func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $2, is_edited = $3, updated_at = $4 WHERE id = $1`,
		comment.ID, comment.Content, comment.IsEdited, comment.UpdatedAt,
	)
	return err
}

// DeleteSubtree removes the comment and all descendants in one statement and
// returns the number of rows removed.
func (r *commentRepo) DeleteSubtree(ctx context.Context, id string) (int, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM comments WHERE id = $1
			UNION ALL
			SELECT c.id FROM comments c
			JOIN subtree s ON c.parent_comment_id = s.id
		)
		DELETE FROM comments WHERE id IN (SELECT id FROM subtree)
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}

// ListRoots returns a page of the post's root comments, newest first
func (r *commentRepo) ListRoots(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE post_id = $1 AND parent_comment_id IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// CountRoots returns the number of root comments on a post
func (r *commentRepo) CountRoots(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = $1 AND parent_comment_id IS NULL`,
		postID).Scan(&count)
	return count, err
}

// ListByPost returns every comment of the post, oldest first. Tree assembly
// happens in memory so listing a post costs a constant number of queries.
func (r *commentRepo) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
