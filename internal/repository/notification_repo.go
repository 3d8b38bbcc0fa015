package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// notificationRepo is the concrete implementation of NotificationRepository
type notificationRepo struct {
	db *database.DB
}

// NewNotificationRepo creates a new notification repository
func NewNotificationRepo(db *database.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

const notificationColumns = `id, user_id, type, title, body, data, is_read, is_sent, created_at, updated_at`

func scanNotification(row interface{ Scan(...interface{}) error }) (*models.Notification, error) {
	var n models.Notification
	var data []byte
	err := row.Scan(
		&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &data,
		&n.IsRead, &n.IsSent, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, err
		}
	}
	return &n, nil
}

// Create inserts a new notification
func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	data, err := json.Marshal(notification.Data)
	if err != nil {
		return err
	}
	now := time.Now()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = now
	}
	notification.UpdatedAt = now
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, body, data, is_read, is_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		notification.ID, notification.UserID, notification.Type, notification.Title,
		notification.Body, data, notification.IsRead, notification.IsSent,
		notification.CreatedAt, notification.UpdatedAt,
	)
	return err
}

// ListByUser returns a page of the user's notifications, newest first
func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// CountByUser returns the user's total notification count
func (r *notificationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// CountUnread returns the user's unread notification count
func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	return count, err
}

// MarkRead marks one of the user's notifications as read and returns it,
// or nil when no such notification exists.
func (r *notificationRepo) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	notification, err := scanNotification(r.db.QueryRowContext(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+notificationColumns,
		id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllRead marks all the user's unread notifications read, returning the
// number updated.
func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = now()
		WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(updated), nil
}

// MarkSent records a successful push delivery
func (r *notificationRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_sent = TRUE, updated_at = now() WHERE id = $1`, id)
	return err
}

// DeleteAllByUser clears the user's notification feed, returning the number
// removed.
func (r *notificationRepo) DeleteAllByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(deleted), nil
}
