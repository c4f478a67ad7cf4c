package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lib/pq"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

func (s *Storage) CreateUser(ctx context.Context, email, name, passHash string) (*domain.Actor, error) {
	var a domain.Actor
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, name, pass_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, moderator, created_at
	`, email, name, passHash).Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, &apperr.StatusError{Message: "email already registered", Code: http.StatusConflict}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &a, nil
}

// UserByEmail also returns the password hash for login verification.
func (s *Storage) UserByEmail(ctx context.Context, email domain.Email) (*domain.Actor, string, error) {
	var a domain.Actor
	var passHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, moderator, created_at, pass_hash
		FROM users WHERE email = $1
	`, email).Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.CreatedAt, &passHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", apperr.NotFound(domain.KindUser, email)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}
	return &a, passHash, nil
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (*domain.Actor, error) {
	var a domain.Actor
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, moderator, created_at FROM users WHERE id = $1
	`, id).Scan(&a.Id, &a.Email, &a.Name, &a.Moderator, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(domain.KindUser, strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &a, nil
}

// PreferencesByUser returns the stored preference record, or defaults
// when the user never saved one.
func (s *Storage) PreferencesByUser(ctx context.Context, id domain.UserId) (*domain.Preferences, error) {
	var p domain.Preferences
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, time_zone, posts_per_page, hide_signatures
		FROM preferences WHERE user_id = $1
	`, id).Scan(&p.UserId, &p.TimeZone, &p.PostsPerPage, &p.HideSignatures)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Preferences{UserId: id, TimeZone: "UTC", PostsPerPage: s.cfg.Public.PostsPerPage}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preferences: %w", err)
	}
	return &p, nil
}

func (s *Storage) SetModeratorFlag(ctx context.Context, id domain.UserId, moderator bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET moderator = $2 WHERE id = $1`, id, moderator)
	if err != nil {
		return fmt.Errorf("failed to update moderator flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(domain.KindUser, strconv.FormatInt(id, 10))
	}
	return nil
}
