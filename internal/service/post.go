package service

import (
	"context"

	"github.com/boardkit/boardkit/internal/domain"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error)
	Delete(ctx context.Context, topicId domain.TopicId, postId domain.PostId) error
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	renderer  BodyRenderer
}

type PostStorage interface {
	CreatePost(ctx context.Context, data domain.PostCreationData, bodyHtml string) (*domain.Post, error)
	DeletePost(ctx context.Context, topicId domain.TopicId, postId domain.PostId) error
}

type PostValidator interface {
	Body(body string) error
}

func NewPost(storage PostStorage, validator PostValidator, renderer BodyRenderer) PostService {
	return &Post{storage, validator, renderer}
}

func (p *Post) Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	if err := p.validator.Body(data.Body); err != nil {
		return nil, err
	}
	html, err := p.renderer.Render(data.Body)
	if err != nil {
		return nil, err
	}
	return p.storage.CreatePost(ctx, data, html)
}

func (p *Post) Delete(ctx context.Context, topicId domain.TopicId, postId domain.PostId) error {
	return p.storage.DeletePost(ctx, topicId, postId)
}
