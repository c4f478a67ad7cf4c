// Package api holds the request and response DTOs for the HTTP layer.
package api

import "github.com/boardkit/boardkit/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateBoardRequest struct {
	Slug          string   `json:"slug" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	AllowedEmails []string `json:"allowed_emails"`
}

type CreateTopicRequest struct {
	Title        string          `json:"title" validate:"required"`
	Body         string          `json:"body" validate:"required"`
	Private      bool            `json:"private"`
	Participants []domain.UserId `json:"participants"`
}

type CreatePostRequest struct {
	Body string `json:"body" validate:"required"`
}

type SetLockedRequest struct {
	Locked bool `json:"locked"`
}

type BoardResponse struct {
	Board *domain.Messageboard `json:"board"`
}

type BoardListResponse struct {
	Boards []domain.Messageboard `json:"boards"`
}

type TopicResponse struct {
	Topic *domain.Topic `json:"topic"`
}

type TopicListResponse struct {
	Topics []domain.Topic `json:"topics"`
}

type PostResponse struct {
	Post *domain.Post `json:"post"`
}

type ActiveUser struct {
	Id        domain.UserId `json:"id"`
	Name      string        `json:"name"`
	Moderator bool          `json:"moderator"`
}

type ActiveUsersResponse struct {
	Users []ActiveUser `json:"users"`
}

type UserActivityResponse struct {
	Posts []domain.Post `json:"posts"`
}

type ModeratorsResponse struct {
	Moderators []ActiveUser `json:"moderators"`
}

type UserResponse struct {
	Id          domain.UserId       `json:"id"`
	Email       string              `json:"email"`
	Name        string              `json:"name"`
	Moderator   bool                `json:"moderator"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}
