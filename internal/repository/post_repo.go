package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const postColumns = `id, user_id, type, item_name, description, location_name, longitude, latitude,
	images, reward_amount, is_anonymous, category, tags, status, total_claims, total_comments,
	created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.UserID, &post.Type, &post.ItemName, &post.Description,
		&post.LocationName, &post.Longitude, &post.Latitude,
		pq.Array(&post.Images), &post.RewardAmount, &post.IsAnonymous,
		&post.Category, pq.Array(&post.Tags), &post.Status,
		&post.TotalClaims, &post.TotalComments,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, type, item_name, description, location_name,
			longitude, latitude, images, reward_amount, is_anonymous, category, tags,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.UserID, post.Type, post.ItemName, post.Description,
		post.LocationName, post.Longitude, post.Latitude, pq.Array(post.Images),
		post.RewardAmount, post.IsAnonymous, post.Category, pq.Array(post.Tags),
		post.Status, post.CreatedAt, post.UpdatedAt,
	)
	return err
}

// GetByID retrieves a post by ID
func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// buildPostFilter translates a PostFilter into a WHERE clause
func buildPostFilter(filter *models.PostFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter != nil {
		if filter.UserID != "" {
			add("user_id = $%d", filter.UserID)
		}
		if filter.Type != "" {
			add("type = $%d", filter.Type)
		}
		if filter.Category != "" {
			add("category = $%d", strings.ToLower(filter.Category))
		}
		if filter.Status != "" {
			add("status = $%d", filter.Status)
		}
		if filter.Location != "" {
			add("location_name ILIKE '%%' || $%d || '%%'", filter.Location)
		}
		if filter.Search != "" {
			args = append(args, filter.Search)
			n := len(args)
			conditions = append(conditions, fmt.Sprintf(
				"(item_name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%%' || $%d || '%%'))",
				n, n, n,
			))
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a page of posts matching the filter, newest first
func (r *postRepo) List(ctx context.Context, filter *models.PostFilter, limit, offset int) ([]*models.Post, error) {
	where, args := buildPostFilter(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// CountFiltered returns the number of posts matching the filter
func (r *postRepo) CountFiltered(ctx context.Context, filter *models.PostFilter) (int, error) {
	where, args := buildPostFilter(filter)
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&count)
	return count, err
}

// Update persists the mutable fields of a post
func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET description = $2, location_name = $3, longitude = $4, latitude = $5,
			images = $6, reward_amount = $7, tags = $8, updated_at = $9
		WHERE id = $1
	`
	post.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Description, post.LocationName, post.Longitude, post.Latitude,
		pq.Array(post.Images), post.RewardAmount, pq.Array(post.Tags), post.UpdatedAt,
	)
	return err
}

// UpdateStatus sets the lifecycle status of a post
func (r *postRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}

// Delete removes a post. Comments, claims and saved posts cascade at the
// schema level.
func (r *postRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

// AddComments atomically adjusts the comment counter, floored at zero
func (r *postRepo) AddComments(ctx context.Context, id string, delta int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET total_comments = GREATEST(total_comments + $2, 0), updated_at = now() WHERE id = $1`,
		id, delta)
	return err
}

// AddClaims atomically adjusts the claim counter, floored at zero
func (r *postRepo) AddClaims(ctx context.Context, id string, delta int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET total_claims = GREATEST(total_claims + $2, 0), updated_at = now() WHERE id = $1`,
		id, delta)
	return err
}

// Count returns the total number of posts
func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}
