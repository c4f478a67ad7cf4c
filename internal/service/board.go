package service

import (
	"context"

	"github.com/boardkit/boardkit/internal/domain"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, data domain.BoardCreationData) (*domain.Messageboard, error)
	GetAll(ctx context.Context) ([]domain.Messageboard, error)
	Delete(ctx context.Context, id domain.BoardId) error
	SetLocked(ctx context.Context, id domain.BoardId, locked bool) error
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (*domain.Messageboard, error)
	AllMessageboards(ctx context.Context) ([]domain.Messageboard, error)
	DeleteBoard(ctx context.Context, id domain.BoardId) error
	SetBoardLocked(ctx context.Context, id domain.BoardId, locked bool) error
}

type BoardValidator interface {
	Slug(slug string) error
	Name(name string) error
}

func NewBoard(storage BoardStorage, validator BoardValidator) BoardService {
	return &Board{storage, validator}
}

func (b *Board) Create(ctx context.Context, data domain.BoardCreationData) (*domain.Messageboard, error) {
	if err := b.validator.Slug(data.Slug); err != nil {
		return nil, err
	}
	if err := b.validator.Name(data.Name); err != nil {
		return nil, err
	}
	return b.storage.CreateBoard(ctx, data)
}

func (b *Board) GetAll(ctx context.Context) ([]domain.Messageboard, error) {
	return b.storage.AllMessageboards(ctx)
}

func (b *Board) Delete(ctx context.Context, id domain.BoardId) error {
	return b.storage.DeleteBoard(ctx, id)
}

func (b *Board) SetLocked(ctx context.Context, id domain.BoardId, locked bool) error {
	return b.storage.SetBoardLocked(ctx, id, locked)
}
