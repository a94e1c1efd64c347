package notifications

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface,
// suitable for development and testing.
type MemoryStorage struct {
	byUser map[int64][]Notification
	mu     sync.RWMutex
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byUser: make(map[int64][]Notification),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, notif Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if notif.ID == "" {
		return errors.New("notification ID is required")
	}
	if notif.UserID == 0 {
		return errors.New("user ID is required")
	}
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}

	s.byUser[notif.UserID] = append(s.byUser[notif.UserID], notif)
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, userID int64, notifID string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.byUser[userID] {
		if n.ID == notifID {
			// Return a copy to prevent external mutation of stored data.
			notif := n
			return &notif, nil
		}
	}
	return nil, ErrNotificationNotFound
}

func (s *MemoryStorage) List(ctx context.Context, userID int64, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []Notification
	for _, n := range s.byUser[userID] {
		if opts.OnlyUnread && n.Read {
			continue
		}
		if len(opts.Types) > 0 && !containsType(opts.Types, n.Type) {
			continue
		}
		if opts.Since != nil && n.CreatedAt.Before(*opts.Since) {
			continue
		}
		filtered = append(filtered, n)
	}

	// Newest first.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(filtered) {
			return []Notification{}, nil
		}
		filtered = filtered[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(filtered) {
		filtered = filtered[:opts.Limit]
	}
	if filtered == nil {
		filtered = []Notification{}
	}
	return filtered, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, userID int64, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := toSet(notifIDs)
	notifs := s.byUser[userID]
	for i := range notifs {
		if _, ok := ids[notifs[i].ID]; ok && !notifs[i].Read {
			notifs[i].MarkAsRead()
		}
	}
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, userID int64, notifIDs ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := toSet(notifIDs)
	notifs := s.byUser[userID]
	kept := notifs[:0]
	for _, n := range notifs {
		if _, ok := ids[n.ID]; !ok {
			kept = append(kept, n)
		}
	}
	s.byUser[userID] = kept
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.byUser[userID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func containsType(types []Type, t Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
