package models

import (
	"time"
)

// Notification types
const (
	NotificationTypeClaim        = "claim"
	NotificationTypeMessage      = "message"
	NotificationTypeComment      = "comment"
	NotificationTypeStatusUpdate = "status_update"
)

// Notification is an in-app notification persisted for a user. IsSent
// records whether the best-effort push delivery succeeded; it has no effect
// on the in-app feed.
type Notification struct {
	ID        string            `json:"notificationId" db:"id"`
	UserID    string            `json:"userId" db:"user_id"`
	Type      string            `json:"type" db:"type"`
	Title     string            `json:"title" db:"title"`
	Body      string            `json:"body" db:"body"`
	Data      map[string]string `json:"data" db:"data"`
	IsRead    bool              `json:"isRead" db:"is_read"`
	IsSent    bool              `json:"isSent" db:"is_sent"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// NotificationPage is a page of notifications with the unread badge count
type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unreadCount"`
	Pagination    Pagination      `json:"pagination"`
}
