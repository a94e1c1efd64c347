package notifications

import (
	"context"
	"time"
)

// Storage handles notification record persistence and retrieval.
type Storage interface {
	// Create stores a new notification record.
	Create(ctx context.Context, notif Notification) error

	// Get retrieves a single notification scoped to a user.
	Get(ctx context.Context, userID int64, notifID string) (*Notification, error)

	// List returns notifications for a user, newest first.
	List(ctx context.Context, userID int64, opts ListOptions) ([]Notification, error)

	// MarkRead marks notification(s) as read.
	MarkRead(ctx context.Context, userID int64, notifIDs ...string) error

	// Delete removes notification(s).
	Delete(ctx context.Context, userID int64, notifIDs ...string) error

	// CountUnread returns the unread count for a user.
	CountUnread(ctx context.Context, userID int64) (int, error)
}

// ListOptions provides filtering and pagination for listing notifications.
type ListOptions struct {
	Limit      int        // Maximum number of notifications to return (0 = no limit)
	Offset     int        // Number of notifications to skip for pagination
	OnlyUnread bool       // When true, only return unread notifications
	Types      []Type     // If set, only return notifications of these types
	Since      *time.Time // If set, only return notifications created after this time
}
