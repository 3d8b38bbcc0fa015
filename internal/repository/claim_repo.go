package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// claimRepo is the concrete implementation of ClaimRepository
type claimRepo struct {
	db *database.DB
}

// NewClaimRepo creates a new claim repository
func NewClaimRepo(db *database.DB) ClaimRepository {
	return &claimRepo{db: db}
}

const claimColumns = `id, post_id, claimer_id, claim_type, status, message, created_at, updated_at`

func scanClaim(row interface{ Scan(...interface{}) error }) (*models.Claim, error) {
	var claim models.Claim
	err := row.Scan(
		&claim.ID, &claim.PostID, &claim.ClaimerID, &claim.ClaimType,
		&claim.Status, &claim.Message, &claim.CreatedAt, &claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Create inserts a new claim
func (r *claimRepo) Create(ctx context.Context, claim *models.Claim) error {
	query := `
		INSERT INTO claims (id, post_id, claimer_id, claim_type, status, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	now := time.Now()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		claim.ID, claim.PostID, claim.ClaimerID, claim.ClaimType,
		claim.Status, claim.Message, claim.CreatedAt, claim.UpdatedAt,
	)
	return err
}

// GetByID retrieves a claim by ID
func (r *claimRepo) GetByID(ctx context.Context, id string) (*models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	claim, err := scanClaim(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// GetByPostAndClaimer retrieves a user's claim on a post, if any
func (r *claimRepo) GetByPostAndClaimer(ctx context.Context, postID, claimerID string) (*models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE post_id = $1 AND claimer_id = $2`

	claim, err := scanClaim(r.db.QueryRowContext(ctx, query, postID, claimerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// buildClaimFilter translates a ClaimFilter into a WHERE clause. PostOwner
// matches claims on any post owned by the given user.
func buildClaimFilter(filter *models.ClaimFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	add := func(condition string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter != nil {
		if filter.PostID != "" {
			add("post_id = $%d", filter.PostID)
		}
		if filter.ClaimerID != "" {
			add("claimer_id = $%d", filter.ClaimerID)
		}
		if filter.PostOwner != "" {
			add("post_id IN (SELECT id FROM posts WHERE user_id = $%d)", filter.PostOwner)
		}
		if filter.Status != "" {
			add("status = $%d", filter.Status)
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a page of claims matching the filter, newest first
func (r *claimRepo) List(ctx context.Context, filter *models.ClaimFilter, limit, offset int) ([]*models.Claim, error) {
	where, args := buildClaimFilter(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM claims%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		claimColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

// CountFiltered returns the number of claims matching the filter
func (r *claimRepo) CountFiltered(ctx context.Context, filter *models.ClaimFilter) (int, error) {
	where, args := buildClaimFilter(filter)
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM claims"+where, args...).Scan(&count)
	return count, err
}

// UpdateStatus sets the claim status
func (r *claimRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE claims SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	return err
}

// Delete removes a claim
func (r *claimRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM claims WHERE id = $1`, id)
	return err
}

// Count returns the total number of claims
func (r *claimRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM claims").Scan(&count)
	return count, err
}
