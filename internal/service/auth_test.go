package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/identity"
	"github.com/boardkit/boardkit/internal/utils"
)

type MockAuthStorage struct {
	MockCreateUser  func(ctx context.Context, email, name, passHash string) (*domain.Actor, error)
	MockUserByEmail func(ctx context.Context, email domain.Email) (*domain.Actor, string, error)
}

func (m *MockAuthStorage) CreateUser(ctx context.Context, email, name, passHash string) (*domain.Actor, error) {
	if m.MockCreateUser != nil {
		return m.MockCreateUser(ctx, email, name, passHash)
	}
	return &domain.Actor{Id: 1, Email: email, Name: name}, nil
}

func (m *MockAuthStorage) UserByEmail(ctx context.Context, email domain.Email) (*domain.Actor, string, error) {
	if m.MockUserByEmail != nil {
		return m.MockUserByEmail(ctx, email)
	}
	return nil, "", apperr.NotFound(domain.KindUser, email)
}

func newTestAuth(storage *MockAuthStorage) AuthService {
	return NewAuth(storage, identity.NewJwt("test-key", time.Hour))
}

func TestRegister(t *testing.T) {
	t.Run("stores a bcrypt hash, not the password", func(t *testing.T) {
		var storedHash string
		storage := &MockAuthStorage{
			MockCreateUser: func(_ context.Context, email, name, passHash string) (*domain.Actor, error) {
				storedHash = passHash
				return &domain.Actor{Id: 1, Email: email, Name: name}, nil
			},
		}

		actor, err := newTestAuth(storage).Register(context.Background(), "a@b.com", "alice", "longenough")

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", actor.Email)
		assert.NotEqual(t, "longenough", storedHash)
		assert.True(t, utils.CheckPassword(storedHash, "longenough"))
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := newTestAuth(&MockAuthStorage{}).Register(context.Background(), "a@b.com", "alice", "short")

		var se *apperr.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Code)
	})
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)

	knownUser := &MockAuthStorage{
		MockUserByEmail: func(_ context.Context, email domain.Email) (*domain.Actor, string, error) {
			return &domain.Actor{Id: 7, Email: email, Name: "alice"}, hash, nil
		},
	}

	t.Run("successful login returns a decodable token", func(t *testing.T) {
		jwtService := identity.NewJwt("test-key", time.Hour)
		auth := NewAuth(knownUser, jwtService)

		actor, token, err := auth.Login(context.Background(), "a@b.com", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, int64(7), actor.Id)
		_, err = jwtService.DecodeToken(token)
		assert.NoError(t, err)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, _, errWrongPass := newTestAuth(knownUser).Login(context.Background(), "a@b.com", "wrong")
		_, _, errUnknown := newTestAuth(&MockAuthStorage{}).Login(context.Background(), "nobody@b.com", "wrong")

		require.Error(t, errWrongPass)
		require.Error(t, errUnknown)
		assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
		assert.Equal(t, http.StatusUnauthorized, apperr.StatusCode(errWrongPass))
		assert.Equal(t, http.StatusUnauthorized, apperr.StatusCode(errUnknown))
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		storage := &MockAuthStorage{
			MockUserByEmail: func(context.Context, domain.Email) (*domain.Actor, string, error) {
				return nil, "", errors.New("db down")
			},
		}
		_, _, err := newTestAuth(storage).Login(context.Background(), "a@b.com", "pw")

		assert.EqualError(t, err, "db down")
	})
}
