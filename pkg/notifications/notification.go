package notifications

import "time"

// Notification is the persisted in-app ("web" channel) notification record.
// The dispatch engine only ever creates records; read-state mutation belongs
// to the user-facing flows backed by Storage.
type Notification struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Type      Type       `json:"type"`
	Text      string     `json:"text"` // rendered short text
	Path      string     `json:"path"` // rendered deep-link path
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MarkAsRead marks the notification as read with the current timestamp.
func (n *Notification) MarkAsRead() {
	n.Read = true
	now := time.Now()
	n.ReadAt = &now
	n.UpdatedAt = now
}
