package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/boardkit/boardkit/internal/domain"
)

// TouchActivity upserts the last-seen timestamp for (user, board).
// Called from the async dispatcher, never from the request path.
func (s *Storage) TouchActivity(ctx context.Context, userId domain.UserId, boardId domain.BoardId) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO board_activity (board_id, user_id, last_active_at)
		VALUES ($1, $2, now())
		ON CONFLICT (board_id, user_id) DO UPDATE SET last_active_at = now()
	`, boardId, userId)
	if err != nil {
		return fmt.Errorf("failed to touch activity: %w", err)
	}
	return nil
}

// RecentlyActiveUsers lists users active on one board since the cutoff,
// most recent first.
func (s *Storage) RecentlyActiveUsers(ctx context.Context, boardId domain.BoardId, since time.Time, limit int) ([]domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.name, u.moderator, a.last_active_at
		FROM board_activity a
		JOIN users u ON u.id = a.user_id
		WHERE a.board_id = $1 AND a.last_active_at >= $2
		ORDER BY a.last_active_at DESC
		LIMIT $3
	`, boardId, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active users: %w", err)
	}
	defer rows.Close()

	return scanActors(rows)
}

// GloballyActiveUsers lists users active on any board since the cutoff.
// Ordered by each user's most recent activity; the exact order across
// boards is implementation-defined but stable.
func (s *Storage) GloballyActiveUsers(ctx context.Context, since time.Time, limit int) ([]domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.name, u.moderator, MAX(a.last_active_at) AS last_active_at
		FROM board_activity a
		JOIN users u ON u.id = a.user_id
		WHERE a.last_active_at >= $1
		GROUP BY u.id, u.email, u.name, u.moderator
		ORDER BY last_active_at DESC, u.id
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch globally active users: %w", err)
	}
	defer rows.Close()

	return scanActors(rows)
}

// PruneActivity deletes activity rows older than the cutoff.
func (s *Storage) PruneActivity(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM board_activity WHERE last_active_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}
	return res.RowsAffected()
}

func scanActors(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.Actor, error) {
	actors := []domain.Actor{}
	for rows.Next() {
		var a domain.Actor
		if err := rows.Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan active user: %w", err)
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}
