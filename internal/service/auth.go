package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/identity"
	"github.com/boardkit/boardkit/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.Actor, error)
	Login(ctx context.Context, email, password string) (*domain.Actor, string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     identity.JwtService
}

type AuthStorage interface {
	CreateUser(ctx context.Context, email, name, passHash string) (*domain.Actor, error)
	UserByEmail(ctx context.Context, email domain.Email) (*domain.Actor, string, error)
}

func NewAuth(storage AuthStorage, jwt identity.JwtService) AuthService {
	return &Auth{storage, jwt}
}

func (a *Auth) Register(ctx context.Context, email, name, password string) (*domain.Actor, error) {
	if len(password) < 8 {
		return nil, &apperr.StatusError{Message: "password must be at least 8 characters", Code: http.StatusBadRequest}
	}
	passHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return a.storage.CreateUser(ctx, email, name, passHash)
}

// Login verifies credentials and returns the actor with a signed token.
// A wrong password and an unknown email produce the same error so the
// endpoint does not leak which emails are registered.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.Actor, string, error) {
	badCredentials := &apperr.StatusError{Message: "wrong email or password", Code: http.StatusUnauthorized}

	actor, passHash, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		var nf *apperr.NotFoundError
		if errors.As(err, &nf) {
			return nil, "", badCredentials
		}
		return nil, "", err
	}
	if !utils.CheckPassword(passHash, password) {
		return nil, "", badCredentials
	}

	token, err := a.jwt.NewToken(*actor)
	if err != nil {
		return nil, "", err
	}
	return actor, token, nil
}
