package notifications

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreadCountTTL bounds staleness if an invalidation is ever missed.
const unreadCountTTL = 10 * time.Minute

// CachedStorage decorates a Storage with a Redis-backed unread counter.
// CountUnread is the hot path behind the client's badge polling; caching it
// keeps that polling off the notifications table. Writes go through to the
// underlying storage first; the counter is a cache, never the source of
// truth, so cache failures degrade to a recount rather than an error.
type CachedStorage struct {
	next   Storage
	client *redis.Client
}

// NewCachedStorage wraps a Storage with an unread-count cache.
func NewCachedStorage(next Storage, client *redis.Client) *CachedStorage {
	return &CachedStorage{next: next, client: client}
}

func unreadKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

func (s *CachedStorage) Create(ctx context.Context, notif Notification) error {
	if err := s.next.Create(ctx, notif); err != nil {
		return err
	}

	key := unreadKey(notif.UserID)
	// Only bump a counter that already exists; otherwise the next
	// CountUnread repopulates it from storage.
	if err := s.incrIfPresent(ctx, key); err != nil {
		// Drop the counter so a failed bump cannot leave it stale.
		_ = s.client.Del(ctx, key).Err()
	}
	return nil
}

func (s *CachedStorage) Get(ctx context.Context, userID int64, notifID string) (*Notification, error) {
	return s.next.Get(ctx, userID, notifID)
}

func (s *CachedStorage) List(ctx context.Context, userID int64, opts ListOptions) ([]Notification, error) {
	return s.next.List(ctx, userID, opts)
}

func (s *CachedStorage) MarkRead(ctx context.Context, userID int64, notifIDs ...string) error {
	if err := s.next.MarkRead(ctx, userID, notifIDs...); err != nil {
		return err
	}
	_ = s.client.Del(ctx, unreadKey(userID)).Err()
	return nil
}

func (s *CachedStorage) Delete(ctx context.Context, userID int64, notifIDs ...string) error {
	if err := s.next.Delete(ctx, userID, notifIDs...); err != nil {
		return err
	}
	_ = s.client.Del(ctx, unreadKey(userID)).Err()
	return nil
}

func (s *CachedStorage) CountUnread(ctx context.Context, userID int64) (int, error) {
	key := unreadKey(userID)

	cached, err := s.client.Get(ctx, key).Result()
	if err == nil {
		if count, parseErr := strconv.Atoi(cached); parseErr == nil {
			return count, nil
		}
	}

	count, err := s.next.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = s.client.Set(ctx, key, count, unreadCountTTL).Err()
	return count, nil
}

func (s *CachedStorage) incrIfPresent(ctx context.Context, key string) error {
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return nil
	}
	return s.client.Incr(ctx, key).Err()
}
