package pg

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/boardkit/internal/domain"
)

func TestTouchActivityUpserts(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("INSERT INTO board_activity .+ ON CONFLICT").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.TouchActivity(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentlyActiveUsersOrderedMostRecentFirst(t *testing.T) {
	s, mock := newMockStorage(t)
	since := time.Now().Add(-15 * time.Minute)

	rows := sqlmock.NewRows([]string{"id", "email", "name", "moderator", "last_active_at"}).
		AddRow(int64(5), "e@example.com", "e", false, time.Now()).
		AddRow(int64(6), "f@example.com", "f", true, time.Now().Add(-time.Minute))
	mock.ExpectQuery("SELECT .+ FROM board_activity a").
		WithArgs(int64(3), since, 50).
		WillReturnRows(rows)

	users, err := s.RecentlyActiveUsers(context.Background(), 3, since, 50)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, domain.UserId(5), users[0].Id)
	assert.Equal(t, domain.UserId(6), users[1].Id)
	assert.True(t, users[1].Moderator)
}

func TestGloballyActiveUsersEmpty(t *testing.T) {
	s, mock := newMockStorage(t)
	since := time.Now().Add(-15 * time.Minute)

	mock.ExpectQuery("SELECT .+ FROM board_activity a").
		WithArgs(since, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "moderator", "last_active_at"}))

	users, err := s.GloballyActiveUsers(context.Background(), since, 50)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users, "empty slice, not nil")
}

func TestPruneActivity(t *testing.T) {
	s, mock := newMockStorage(t)
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec("DELETE FROM board_activity WHERE last_active_at").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	pruned, err := s.PruneActivity(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), pruned)
}
