package pg

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/boardkit/boardkit/internal/domain"
)

// FlaggedModerators lists every user with the moderator flag set.
// Backs the flag strategy, which treats the flag as board-agnostic.
func (s *Storage) FlaggedModerators(ctx context.Context) ([]domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, name, moderator, created_at FROM users WHERE moderator ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderators: %w", err)
	}
	defer rows.Close()

	mods := []domain.Actor{}
	for rows.Next() {
		var a domain.Actor
		if err := rows.Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan moderator: %w", err)
		}
		mods = append(mods, a)
	}
	return mods, rows.Err()
}

// ModeratedBoards backs the per-board strategy via the moderatorships
// table.
func (s *Storage) ModeratedBoards(ctx context.Context, userId domain.UserId) ([]domain.Messageboard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+prefixedBoardColumns("b")+`
		FROM moderatorships m
		JOIN messageboards b ON b.id = m.board_id
		WHERE m.user_id = $1
		ORDER BY b.slug
	`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderated boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Messageboard{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan moderated board: %w", err)
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

func (s *Storage) BoardModerators(ctx context.Context, boardIds []domain.BoardId) ([]domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT u.id, u.email, u.name, u.moderator, u.created_at
		FROM moderatorships m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = ANY($1)
		ORDER BY u.id
	`, pq.Array(boardIds))
	if err != nil {
		return nil, fmt.Errorf("failed to list board moderators: %w", err)
	}
	defer rows.Close()

	mods := []domain.Actor{}
	for rows.Next() {
		var a domain.Actor
		if err := rows.Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board moderator: %w", err)
		}
		mods = append(mods, a)
	}
	return mods, rows.Err()
}

func prefixedBoardColumns(alias string) string {
	return alias + ".id, " + alias + ".slug, " + alias + ".name, " + alias + ".description, " +
		alias + ".allowed_emails, " + alias + ".locked, " + alias + ".created_at, " + alias + ".last_activity"
}
