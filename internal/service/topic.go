package service

import (
	"context"

	"github.com/boardkit/boardkit/internal/domain"
)

type TopicService interface {
	Create(ctx context.Context, data domain.TopicCreationData) (*domain.Topic, error)
	Get(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, page int) (*domain.Topic, error)
	List(ctx context.Context, boardId domain.BoardId, page int) ([]domain.Topic, error)
	ListPrivate(ctx context.Context, userId domain.UserId, page int) ([]domain.Topic, error)
	Delete(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) error
	SetLocked(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, locked bool) error
}

type Topic struct {
	storage       TopicStorage
	validator     TopicValidator
	renderer      BodyRenderer
	topicsPerPage int
	postsPerPage  int
}

type TopicStorage interface {
	CreateTopic(ctx context.Context, data domain.TopicCreationData, firstPostHtml string) (*domain.Topic, error)
	TopicById(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) (*domain.Topic, error)
	TopicsByBoard(ctx context.Context, boardId domain.BoardId, page, perPage int) ([]domain.Topic, error)
	PrivateTopicsFor(ctx context.Context, userId domain.UserId, page, perPage int) ([]domain.Topic, error)
	PostsByTopic(ctx context.Context, topicId domain.TopicId, page, perPage int) ([]domain.Post, error)
	DeleteTopic(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) error
	SetTopicLocked(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, locked bool) error
}

type TopicValidator interface {
	Title(title string) error
	Body(body string) error
}

type BodyRenderer interface {
	Render(body string) (string, error)
}

func NewTopic(storage TopicStorage, validator TopicValidator, renderer BodyRenderer, topicsPerPage, postsPerPage int) TopicService {
	return &Topic{storage, validator, renderer, topicsPerPage, postsPerPage}
}

func (t *Topic) Create(ctx context.Context, data domain.TopicCreationData) (*domain.Topic, error) {
	if err := t.validator.Title(data.Title); err != nil {
		return nil, err
	}
	if err := t.validator.Body(data.FirstPost.Body); err != nil {
		return nil, err
	}
	html, err := t.renderer.Render(data.FirstPost.Body)
	if err != nil {
		return nil, err
	}
	return t.storage.CreateTopic(ctx, data, html)
}

func (t *Topic) Get(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, page int) (*domain.Topic, error) {
	page = max(1, page)

	topic, err := t.storage.TopicById(ctx, boardId, topicId)
	if err != nil {
		return nil, err
	}

	posts, err := t.storage.PostsByTopic(ctx, topicId, page, t.postsPerPage)
	if err != nil {
		return nil, err
	}
	topic.Posts = posts
	return topic, nil
}

func (t *Topic) List(ctx context.Context, boardId domain.BoardId, page int) ([]domain.Topic, error) {
	return t.storage.TopicsByBoard(ctx, boardId, max(1, page), t.topicsPerPage)
}

func (t *Topic) ListPrivate(ctx context.Context, userId domain.UserId, page int) ([]domain.Topic, error) {
	return t.storage.PrivateTopicsFor(ctx, userId, max(1, page), t.topicsPerPage)
}

func (t *Topic) Delete(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) error {
	return t.storage.DeleteTopic(ctx, boardId, topicId)
}

func (t *Topic) SetLocked(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, locked bool) error {
	return t.storage.SetTopicLocked(ctx, boardId, topicId, locked)
}
