package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danielBingham/communities-notify/pkg/pg"
)

// PgStorage is a PostgreSQL-backed implementation of the Storage interface
// over a pgx connection pool. The schema lives in the migrations directory.
type PgStorage struct {
	pool *pgxpool.Pool
}

// NewPgStorage creates a Postgres notification storage.
func NewPgStorage(pool *pgxpool.Pool) *PgStorage {
	return &PgStorage{pool: pool}
}

func (s *PgStorage) Create(ctx context.Context, notif Notification) error {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	if notif.UpdatedAt.IsZero() {
		notif.UpdatedAt = notif.CreatedAt
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, text, path, read, read_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		notif.ID, notif.UserID, string(notif.Type), notif.Text, notif.Path,
		notif.Read, notif.ReadAt, notif.CreatedAt, notif.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification %s: %w", notif.ID, err)
	}
	return nil
}

func (s *PgStorage) Get(ctx context.Context, userID int64, notifID string) (*Notification, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, type, text, path, read, read_at, created_at, updated_at
		FROM notifications
		WHERE user_id = $1 AND id = $2`,
		userID, notifID,
	)

	notif, err := scanNotification(row)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("select notification %s: %w", notifID, err)
	}
	return notif, nil
}

func (s *PgStorage) List(ctx context.Context, userID int64, opts ListOptions) ([]Notification, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, type, text, path, read, read_at, created_at, updated_at
		FROM notifications
		WHERE user_id = $1`)
	args := []any{userID}

	if opts.OnlyUnread {
		sb.WriteString(" AND read = false")
	}
	if len(opts.Types) > 0 {
		types := make([]string, len(opts.Types))
		for i, t := range opts.Types {
			types[i] = string(t)
		}
		args = append(args, types)
		fmt.Fprintf(&sb, " AND type = ANY($%d)", len(args))
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		fmt.Fprintf(&sb, " AND created_at > $%d", len(args))
	}

	sb.WriteString(" ORDER BY created_at DESC")
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("select notifications for user %d: %w", userID, err)
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifications = append(notifications, *notif)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}
	return notifications, nil
}

func (s *PgStorage) MarkRead(ctx context.Context, userID int64, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx, `
		UPDATE notifications
		SET read = true, read_at = now(), updated_at = now()
		WHERE user_id = $1 AND id = ANY($2) AND read = false`,
		userID, notifIDs,
	)
	if err != nil {
		return fmt.Errorf("mark notifications read for user %d: %w", userID, err)
	}
	return nil
}

func (s *PgStorage) Delete(ctx context.Context, userID int64, notifIDs ...string) error {
	if len(notifIDs) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND id = ANY($2)`,
		userID, notifIDs,
	)
	if err != nil {
		return fmt.Errorf("delete notifications for user %d: %w", userID, err)
	}
	return nil
}

func (s *PgStorage) CountUnread(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM notifications
		WHERE user_id = $1 AND read = false`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications for user %d: %w", userID, err)
	}
	return count, nil
}

func scanNotification(row pgx.Row) (*Notification, error) {
	var notif Notification
	var typeStr string
	err := row.Scan(
		&notif.ID, &notif.UserID, &typeStr, &notif.Text, &notif.Path,
		&notif.Read, &notif.ReadAt, &notif.CreatedAt, &notif.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	notif.Type = Type(typeStr)
	return &notif, nil
}
