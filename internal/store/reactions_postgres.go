package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresReactionStore persists reactions in Postgres. The unique
// (voter_id, content_type, content_id) constraint is the arbiter under
// concurrent casts by the same voter; a violation surfaces as ErrConflict.
type PostgresReactionStore struct {
	pool *pgxpool.Pool
}

func NewPostgresReactionStore(pool *pgxpool.Pool) *PostgresReactionStore {
	return &PostgresReactionStore{pool: pool}
}

const reactionColumns = `id::text, voter_id::text, content_type, content_id::text, is_like, created_at`

func (s *PostgresReactionStore) Insert(ctx context.Context, r Reaction) (Reaction, error) {
	const q = `INSERT INTO reactions (voter_id, content_type, content_id, is_like)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + reactionColumns
	row := s.pool.QueryRow(ctx, q, r.VoterID, string(r.ContentType), r.ContentID, r.IsLike)
	out, err := scanReaction(row)
	if err != nil {
		return Reaction{}, pgError(err)
	}
	return out, nil
}

func (s *PostgresReactionStore) Find(ctx context.Context, voterID string, ref ContentRef) (Reaction, error) {
	const q = `SELECT ` + reactionColumns + ` FROM reactions
	           WHERE voter_id = $1::uuid AND content_type = $2 AND content_id = $3::uuid`
	r, err := scanReaction(s.pool.QueryRow(ctx, q, voterID, string(ref.Kind), ref.ID))
	if err != nil {
		return Reaction{}, pgError(err)
	}
	return r, nil
}

func (s *PostgresReactionStore) SetPolarity(ctx context.Context, id string, isLike bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE reactions SET is_like = $2 WHERE id = $1::uuid`, id, isLike)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresReactionStore) Delete(ctx context.Context, voterID string, ref ContentRef) error {
	const q = `DELETE FROM reactions
	           WHERE voter_id = $1::uuid AND content_type = $2 AND content_id = $3::uuid`
	tag, err := s.pool.Exec(ctx, q, voterID, string(ref.Kind), ref.ID)
	if err != nil {
		return pgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresReactionStore) Counts(ctx context.Context, ref ContentRef) (int, int, error) {
	const q = `SELECT
	             COUNT(*) FILTER (WHERE is_like),
	             COUNT(*) FILTER (WHERE NOT is_like)
	           FROM reactions
	           WHERE content_type = $1 AND content_id = $2::uuid`
	var likes, dislikes int
	if err := s.pool.QueryRow(ctx, q, string(ref.Kind), ref.ID).Scan(&likes, &dislikes); err != nil {
		// A malformed content id counts as no reactions, same as the
		// memory backend.
		if errors.Is(pgError(err), ErrNotFound) {
			return 0, 0, nil
		}
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func scanReaction(row pgx.Row) (Reaction, error) {
	var r Reaction
	var kind string
	err := row.Scan(&r.ID, &r.VoterID, &kind, &r.ContentID, &r.IsLike, &r.CreatedAt)
	if err != nil {
		return Reaction{}, err
	}
	r.ContentType = ContentKind(kind)
	return r, nil
}
