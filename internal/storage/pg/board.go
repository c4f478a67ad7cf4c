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

const boardColumns = "id, slug, name, description, allowed_emails, locked, created_at, last_activity"

func scanBoard(row interface{ Scan(...any) error }) (*domain.Messageboard, error) {
	var b domain.Messageboard
	var allowed pq.StringArray
	err := row.Scan(&b.Id, &b.Slug, &b.Name, &b.Description, &allowed, &b.Locked, &b.CreatedAt, &b.LastActivity)
	if err != nil {
		return nil, err
	}
	if len(allowed) > 0 {
		b.AllowedEmails = &allowed
	}
	return &b, nil
}

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (*domain.Messageboard, error) {
	var allowed pq.StringArray
	if data.AllowedEmails != nil {
		allowed = *data.AllowedEmails
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO messageboards (slug, name, description, allowed_emails)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boardColumns,
		data.Slug, data.Name, data.Description, allowed)

	board, err := scanBoard(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, &apperr.StatusError{Message: fmt.Sprintf("messageboard %q already exists", data.Slug), Code: http.StatusConflict}
		}
		return nil, fmt.Errorf("failed to create messageboard: %w", err)
	}
	return board, nil
}

// MessageboardByRef resolves a board by slug, or by numeric id when
// the ref parses as one. A miss is (nil, false, nil), not an error;
// the gate turns it into not-found or absent as the caller requires.
func (s *Storage) MessageboardByRef(ctx context.Context, ref string) (*domain.Messageboard, bool, error) {
	query := `SELECT ` + boardColumns + ` FROM messageboards WHERE slug = $1`
	arg := any(ref)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		query = `SELECT ` + boardColumns + ` FROM messageboards WHERE id = $1`
		arg = id
	}

	board, err := scanBoard(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch messageboard %q: %w", ref, err)
	}
	return board, true, nil
}

func (s *Storage) AllMessageboards(ctx context.Context) ([]domain.Messageboard, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+boardColumns+` FROM messageboards ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messageboards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Messageboard{}
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan messageboard: %w", err)
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messageboards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete messageboard: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(domain.KindMessageboard, strconv.FormatInt(id, 10))
	}
	return nil
}

func (s *Storage) SetBoardLocked(ctx context.Context, id domain.BoardId, locked bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messageboards SET locked = $2 WHERE id = $1`, id, locked)
	if err != nil {
		return fmt.Errorf("failed to update messageboard lock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(domain.KindMessageboard, strconv.FormatInt(id, 10))
	}
	return nil
}
