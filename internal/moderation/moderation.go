// Package moderation answers which messageboards an actor can moderate
// and which actors moderate a set of boards. Strategies are swappable
// and selected by config, so the boolean-flag policy can be replaced
// with a per-board moderatorship table without touching the gate.
package moderation

import (
	"context"
	"fmt"

	"github.com/boardkit/boardkit/internal/domain"
)

type Strategy interface {
	// CanModerate returns the messageboards the actor may moderate.
	CanModerate(ctx context.Context, actor *domain.Actor) ([]domain.Messageboard, error)

	// ModeratorsOf returns the actors who moderate the given boards.
	// Coarse strategies may ignore the argument; it is part of the
	// interface so finer-grained strategies can use it.
	ModeratorsOf(ctx context.Context, boards []domain.Messageboard) ([]domain.Actor, error)
}

type Storage interface {
	AllMessageboards(ctx context.Context) ([]domain.Messageboard, error)
	FlaggedModerators(ctx context.Context) ([]domain.Actor, error)
	ModeratedBoards(ctx context.Context, userId domain.UserId) ([]domain.Messageboard, error)
	BoardModerators(ctx context.Context, boardIds []domain.BoardId) ([]domain.Actor, error)
}

// New selects a strategy by config name.
func New(name string, storage Storage) (Strategy, error) {
	switch name {
	case "flag":
		return &FlagStrategy{storage: storage}, nil
	case "per-board":
		return &BoardStrategy{storage: storage}, nil
	default:
		return nil, fmt.Errorf("unknown moderation strategy %q", name)
	}
}

// FlagStrategy grants moderation over every board when the actor's
// moderator flag is set. Board-agnostic on purpose: the flag is the
// single source of truth.
type FlagStrategy struct {
	storage Storage
}

func (s *FlagStrategy) CanModerate(ctx context.Context, actor *domain.Actor) ([]domain.Messageboard, error) {
	if !actor.SignedIn() || !actor.Moderator {
		return []domain.Messageboard{}, nil
	}
	boards, err := s.storage.AllMessageboards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messageboards: %w", err)
	}
	return boards, nil
}

func (s *FlagStrategy) ModeratorsOf(ctx context.Context, _ []domain.Messageboard) ([]domain.Actor, error) {
	mods, err := s.storage.FlaggedModerators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderators: %w", err)
	}
	return mods, nil
}

// BoardStrategy grants moderation per board via a moderatorship table.
type BoardStrategy struct {
	storage Storage
}

func (s *BoardStrategy) CanModerate(ctx context.Context, actor *domain.Actor) ([]domain.Messageboard, error) {
	if !actor.SignedIn() {
		return []domain.Messageboard{}, nil
	}
	boards, err := s.storage.ModeratedBoards(ctx, actor.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderated boards: %w", err)
	}
	return boards, nil
}

func (s *BoardStrategy) ModeratorsOf(ctx context.Context, boards []domain.Messageboard) ([]domain.Actor, error) {
	ids := make([]domain.BoardId, 0, len(boards))
	for _, b := range boards {
		ids = append(ids, b.Id)
	}
	mods, err := s.storage.BoardModerators(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list board moderators: %w", err)
	}
	return mods, nil
}

// Moderates reports whether the strategy lets the actor moderate the
// given board. Helper shared by the permission policy.
func Moderates(ctx context.Context, s Strategy, actor *domain.Actor, boardId domain.BoardId) (bool, error) {
	boards, err := s.CanModerate(ctx, actor)
	if err != nil {
		return false, err
	}
	for _, b := range boards {
		if b.Id == boardId {
			return true, nil
		}
	}
	return false, nil
}
