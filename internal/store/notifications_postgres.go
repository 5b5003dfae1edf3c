package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNotificationStore persists the notification inbox in Postgres.
type PostgresNotificationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationStore(pool *pgxpool.Pool) *PostgresNotificationStore {
	return &PostgresNotificationStore{pool: pool}
}

func (s *PostgresNotificationStore) Create(ctx context.Context, n Notification) (Notification, error) {
	const q = `INSERT INTO notifications (recipient_id, message)
	           VALUES ($1, $2)
	           RETURNING id::text, recipient_id::text, message, is_read, created_at`
	var out Notification
	err := s.pool.QueryRow(ctx, q, n.RecipientID, n.Message).
		Scan(&out.ID, &out.RecipientID, &out.Message, &out.IsRead, &out.CreatedAt)
	if err != nil {
		return Notification{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresNotificationStore) ListByRecipient(ctx context.Context, recipientID string) ([]Notification, error) {
	const q = `SELECT id::text, recipient_id::text, message, is_read, created_at
	           FROM notifications
	           WHERE recipient_id = $1::uuid
	           ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, q, recipientID)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	out := make([]Notification, 0)
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, pgError(err)
		}
		out = append(out, n)
	}
	return out, pgError(rows.Err())
}

func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id, recipientID string) error {
	const q = `UPDATE notifications SET is_read = TRUE
	           WHERE id = $1::uuid AND recipient_id = $2::uuid`
	tag, err := s.pool.Exec(ctx, q, id, recipientID)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresNotificationStore) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	const q = `SELECT COUNT(*) FROM notifications
	           WHERE recipient_id = $1::uuid AND NOT is_read`
	var count int
	if err := s.pool.QueryRow(ctx, q, recipientID).Scan(&count); err != nil {
		return 0, pgError(err)
	}
	return count, nil
}
