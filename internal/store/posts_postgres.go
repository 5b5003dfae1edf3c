package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPostStore persists posts in Postgres.
type PostgresPostStore struct {
	pool *pgxpool.Pool
}

func NewPostgresPostStore(pool *pgxpool.Pool) *PostgresPostStore {
	return &PostgresPostStore{pool: pool}
}

const postColumns = `id::text, author_id::text, title, content, media, status, views, is_featured, created_at, updated_at`

func (s *PostgresPostStore) Create(ctx context.Context, p Post) (Post, error) {
	media, err := marshalMedia(p.Media)
	if err != nil {
		return Post{}, err
	}
	const q = `INSERT INTO posts (author_id, title, content, media, status, is_featured)
	           VALUES ($1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'published'), $6)
	           RETURNING ` + postColumns
	row := s.pool.QueryRow(ctx, q, p.AuthorID, p.Title, p.Content, media, p.Status, p.IsFeatured)
	out, err := scanPost(row)
	if err != nil {
		return Post{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresPostStore) Get(ctx context.Context, id string) (Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1::uuid`
	p, err := scanPost(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return Post{}, pgError(err)
	}
	return p, nil
}

func (s *PostgresPostStore) List(ctx context.Context) ([]Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, pgError(err)
	}
	defer rows.Close()

	out := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, pgError(err)
		}
		out = append(out, p)
	}
	return out, pgError(rows.Err())
}

func (s *PostgresPostStore) Update(ctx context.Context, p Post) (Post, error) {
	media, err := marshalMedia(p.Media)
	if err != nil {
		return Post{}, err
	}
	const q = `UPDATE posts
	           SET title = $2, content = $3, media = $4, status = $5, is_featured = $6, updated_at = now()
	           WHERE id = $1::uuid
	           RETURNING ` + postColumns
	out, err := scanPost(s.pool.QueryRow(ctx, q, p.ID, p.Title, p.Content, media, p.Status, p.IsFeatured))
	if err != nil {
		return Post{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresPostStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1::uuid`, id)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresPostStore) IncrementViews(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1::uuid`, id)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalMedia(media []Media) (any, error) {
	if len(media) == 0 {
		return nil, nil
	}
	return json.Marshal(media)
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	var media []byte
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &media,
		&p.Status, &p.Views, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	if len(media) > 0 {
		if err := json.Unmarshal(media, &p.Media); err != nil {
			return Post{}, err
		}
	}
	return p, nil
}
