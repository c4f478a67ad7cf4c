package service

import (
	"context"
	"fmt"

	"github.com/boardkit/boardkit/internal/domain"
)

// UserActivityService provides a user's recent posting history.
type UserActivityService interface {
	RecentPosts(ctx context.Context, userId domain.UserId) ([]domain.Post, error)
}

type UserActivity struct {
	storage UserActivityStorage
	limit   int
}

type UserActivityStorage interface {
	PostsByUser(ctx context.Context, userId domain.UserId, limit int) ([]domain.Post, error)
	UserById(ctx context.Context, id domain.UserId) (*domain.Actor, error)
}

func NewUserActivity(storage UserActivityStorage, limit int) UserActivityService {
	return &UserActivity{storage, limit}
}

// RecentPosts fetches the user's last posts, newest first. The user
// must exist; a missing id surfaces as a user not-found.
func (s *UserActivity) RecentPosts(ctx context.Context, userId domain.UserId) ([]domain.Post, error) {
	if _, err := s.storage.UserById(ctx, userId); err != nil {
		return nil, err
	}

	posts, err := s.storage.PostsByUser(ctx, userId, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}
	return posts, nil
}
