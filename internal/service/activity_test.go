package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

type MockUserActivityStorage struct {
	MockPostsByUser func(ctx context.Context, userId domain.UserId, limit int) ([]domain.Post, error)
	MockUserById    func(ctx context.Context, id domain.UserId) (*domain.Actor, error)
}

func (m *MockUserActivityStorage) PostsByUser(ctx context.Context, userId domain.UserId, limit int) ([]domain.Post, error) {
	if m.MockPostsByUser != nil {
		return m.MockPostsByUser(ctx, userId, limit)
	}
	return nil, nil
}

func (m *MockUserActivityStorage) UserById(ctx context.Context, id domain.UserId) (*domain.Actor, error) {
	if m.MockUserById != nil {
		return m.MockUserById(ctx, id)
	}
	return &domain.Actor{Id: id}, nil
}

func TestRecentPosts(t *testing.T) {
	t.Run("returns the user's posts with the configured limit", func(t *testing.T) {
		storage := &MockUserActivityStorage{
			MockPostsByUser: func(_ context.Context, userId domain.UserId, limit int) ([]domain.Post, error) {
				assert.Equal(t, 50, limit)
				return []domain.Post{{Id: 1, Author: userId}}, nil
			},
		}

		posts, err := NewUserActivity(storage, 50).RecentPosts(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, int64(7), posts[0].Author)
	})

	t.Run("unknown user surfaces as not found", func(t *testing.T) {
		storage := &MockUserActivityStorage{
			MockUserById: func(_ context.Context, id domain.UserId) (*domain.Actor, error) {
				return nil, apperr.NotFound(domain.KindUser, "7")
			},
		}

		_, err := NewUserActivity(storage, 50).RecentPosts(context.Background(), 7)

		var nf *apperr.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.KindUser, nf.Kind)
	})
}
