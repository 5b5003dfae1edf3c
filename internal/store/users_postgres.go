package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore reads users from Postgres.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) Create(ctx context.Context, u User) (User, error) {
	const q = `INSERT INTO users (username, email, avatar, role)
	           VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'member'))
	           RETURNING id::text, username, email, avatar, role, created_at`
	row := s.pool.QueryRow(ctx, q, u.Username, u.Email, u.Avatar, u.Role)
	var out User
	if err := row.Scan(&out.ID, &out.Username, &out.Email, &out.Avatar, &out.Role, &out.CreatedAt); err != nil {
		return User{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresUserStore) Get(ctx context.Context, id string) (User, error) {
	const q = `SELECT id::text, username, email, avatar, role, created_at
	           FROM users WHERE id = $1::uuid`
	var u User
	err := s.pool.QueryRow(ctx, q, id).Scan(&u.ID, &u.Username, &u.Email, &u.Avatar, &u.Role, &u.CreatedAt)
	if err != nil {
		return User{}, pgError(err)
	}
	return u, nil
}
