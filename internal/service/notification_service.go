package service

import (
	"context"

	"github.com/lost-and-found-api/internal/apperr"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/rs/zerolog"
)

// notificationService is the concrete implementation of NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	log              zerolog.Logger
}

// newNotificationService creates a new NotificationService
func newNotificationService(notificationRepo repository.NotificationRepository, log zerolog.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		log:              log.With().Str("service", "notification").Logger(),
	}
}

// ListMine returns the requester's notification feed, newest first, along
// with the unread badge count.
func (s *notificationService) ListMine(ctx context.Context, requester *models.User, page, limit int) (*models.NotificationPage, error) {
	offset := (page - 1) * limit
	notifications, err := s.notificationRepo.ListByUser(ctx, requester.ID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.notificationRepo.CountByUser(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	return &models.NotificationPage{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    models.NewPagination(page, limit, len(notifications), total),
	}, nil
}

// UnreadCount returns the requester's unread badge count
func (s *notificationService) UnreadCount(ctx context.Context, requester *models.User) (int, error) {
	return s.notificationRepo.CountUnread(ctx, requester.ID)
}

// MarkRead marks one of the requester's notifications as read. The user
// scoping in the repository keeps one user from touching another's feed.
func (s *notificationService) MarkRead(ctx context.Context, requester *models.User, notificationID string) (*models.Notification, error) {
	notification, err := s.notificationRepo.MarkRead(ctx, notificationID, requester.ID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperr.NotFound("notification not found")
	}
	return notification, nil
}

// MarkAllRead marks the requester's whole feed read, returning how many
// notifications changed.
func (s *notificationService) MarkAllRead(ctx context.Context, requester *models.User) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, requester.ID)
}

// ClearAll deletes the requester's whole feed, returning how many
// notifications were removed.
func (s *notificationService) ClearAll(ctx context.Context, requester *models.User) (int, error) {
	removed, err := s.notificationRepo.DeleteAllByUser(ctx, requester.ID)
	if err != nil {
		return 0, err
	}
	s.log.Info().
		Str("user_id", requester.ID).
		Int("removed", removed).
		Msg("Notification feed cleared")
	return removed, nil
}
