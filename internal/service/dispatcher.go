package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lost-and-found-api/internal/config"
	"github.com/lost-and-found-api/internal/models"
	"github.com/lost-and-found-api/internal/repository"
	"github.com/lost-and-found-api/pkg/push"
	"github.com/rs/zerolog"
)

// Dispatcher delivers notifications off the request path. Dispatch only
// enqueues; a fixed pool of workers persists the in-app notification row and
// attempts the best-effort push delivery. A full queue drops the
// notification rather than blocking a request.
type Dispatcher struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	sender           push.Sender
	log              zerolog.Logger

	queue   chan *models.Notification
	workers int
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewDispatcher creates a notification dispatcher with a bounded queue
func NewDispatcher(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository, sender push.Sender, cfg *config.PushConfig, log zerolog.Logger) *Dispatcher {
	workers := cfg.WorkerCount
	if workers < 1 {
		workers = 1
	}
	queueSize := cfg.QueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	return &Dispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		log:              log.With().Str("service", "dispatcher").Logger(),
		queue:            make(chan *models.Notification, queueSize),
		workers:          workers,
	}
}

// Start launches the worker pool
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Unlock()

	d.log.Info().Int("workers", d.workers).Msg("Notification dispatcher started")

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop drains in-flight deliveries and stops the workers
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	d.cancel()
	d.wg.Wait()
	d.running = false
	d.log.Info().Msg("Notification dispatcher stopped")
}

// Dispatch enqueues a notification for the user. It never blocks and never
// fails the caller: a full queue drops the notification with a log line.
func (d *Dispatcher) Dispatch(userID, notificationType, title, body string, data map[string]string) {
	notification := &models.Notification{
		ID:     uuid.New().String(),
		UserID: userID,
		Type:   notificationType,
		Title:  title,
		Body:   body,
		Data:   data,
	}

	select {
	case d.queue <- notification:
	default:
		d.log.Warn().
			Str("user_id", userID).
			Str("type", notificationType).
			Msg("Notification queue full, dropping notification")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			return
		case notification := <-d.queue:
			d.deliver(notification)
		}
	}
}

// deliver persists the in-app row, then attempts the push. Push failure
// leaves is_sent false and is only logged.
func (d *Dispatcher) deliver(notification *models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("notification_id", notification.ID).
				Msg("Notification delivery panicked - recovered")
		}
	}()

	if err := d.notificationRepo.Create(d.ctx, notification); err != nil {
		d.log.Error().Err(err).
			Str("user_id", notification.UserID).
			Msg("Failed to persist notification")
		return
	}

	if d.sender == nil {
		return
	}

	recipient, err := d.userRepo.GetByID(d.ctx, notification.UserID)
	if err != nil || recipient == nil {
		d.log.Error().Err(err).
			Str("user_id", notification.UserID).
			Msg("Failed to resolve notification recipient")
		return
	}
	if recipient.FCMToken == "" {
		return
	}

	msg := push.Message{
		Title: notification.Title,
		Body:  notification.Body,
		Data:  notification.Data,
	}
	if err := d.sender.Send(d.ctx, recipient.FCMToken, msg); err != nil {
		d.log.Warn().Err(err).
			Str("notification_id", notification.ID).
			Msg("Push delivery failed")
		return
	}

	if err := d.notificationRepo.MarkSent(d.ctx, notification.ID); err != nil {
		d.log.Error().Err(err).
			Str("notification_id", notification.ID).
			Msg("Failed to mark notification as sent")
	}
}
