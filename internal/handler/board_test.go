package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

func boardFixture() *domain.Messageboard {
	return &domain.Messageboard{Id: 3, Slug: "general", Name: "General"}
}

func TestCreateBoardHandler(t *testing.T) {
	h := &Handler{
		cfg:   testConfig(),
		gates: newTestGates(&stubGateStorage{}, allowAll),
		board: &MockBoardService{},
	}
	router := chi.NewRouter()
	router.Post("/v1/boards", h.CreateBoard)

	asModerator := &MockStrategy{
		MockCanModerate: func(context.Context, *domain.Actor) ([]domain.Messageboard, error) {
			return []domain.Messageboard{*boardFixture()}, nil
		},
	}

	body := []byte(`{"slug": "general", "name": "General"}`)

	t.Run("successful request", func(t *testing.T) {
		h.mods = asModerator
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", bytes.NewBuffer(body))
		signIn(req, 7, true)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		h.mods = asModerator
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", bytes.NewBuffer(body))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "please sign in")
	})

	t.Run("signed in but not a moderator", func(t *testing.T) {
		h.mods = &MockStrategy{}
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", bytes.NewBuffer(body))
		signIn(req, 7, false)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "not allowed to create this messageboard")
	})

	t.Run("invalid body", func(t *testing.T) {
		h.mods = asModerator
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", bytes.NewBufferString(`{bad`))
		signIn(req, 7, true)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		h.mods = asModerator
		h.board = &MockBoardService{
			MockCreate: func(context.Context, domain.BoardCreationData) (*domain.Messageboard, error) {
				return nil, errors.New("mock create error")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/v1/boards", bytes.NewBuffer(body))
		signIn(req, 7, true)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetBoardHandler(t *testing.T) {
	storage := &stubGateStorage{boards: map[string]*domain.Messageboard{"general": boardFixture()}}

	newHandler := func(policy policyFunc) (*Handler, *chi.Mux) {
		h := &Handler{
			cfg:   testConfig(),
			gates: newTestGates(storage, policy),
			topic: &MockTopicService{
				MockList: func(_ context.Context, boardId domain.BoardId, page int) ([]domain.Topic, error) {
					return []domain.Topic{{Id: 10, BoardId: boardId, Title: "hello"}}, nil
				},
			},
		}
		router := chi.NewRouter()
		router.Get("/v1/{board}", h.GetBoard)
		return h, router
	}

	t.Run("successful", func(t *testing.T) {
		_, router := newHandler(allowAll)
		req := httptest.NewRequest(http.MethodGet, "/v1/general?page=1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Board  *domain.Messageboard `json:"board"`
			Topics []domain.Topic       `json:"topics"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "general", resp.Board.Slug)
		assert.Len(t, resp.Topics, 1)
	})

	t.Run("unknown board", func(t *testing.T) {
		_, router := newHandler(allowAll)
		req := httptest.NewRequest(http.MethodGet, "/v1/ghosts", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `messageboard "ghosts" not found`)
	})

	t.Run("access denied", func(t *testing.T) {
		_, router := newHandler(denyAll)
		req := httptest.NewRequest(http.MethodGet, "/v1/general", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "not allowed to read this messageboard")
	})
}

func TestGetBoardsHandler(t *testing.T) {
	restricted := domain.Messageboard{Id: 4, Slug: "staff", Name: "Staff"}
	open := *boardFixture()

	// only the open board passes the read check
	policy := policyFunc(func(_ context.Context, _ *domain.Actor, res domain.Resource, _ apperr.Action) (bool, error) {
		board, ok := res.(*domain.Messageboard)
		return ok && board.Id == open.Id, nil
	})

	h := &Handler{
		cfg:   testConfig(),
		gates: newTestGates(&stubGateStorage{}, policy),
		board: &MockBoardService{
			MockGetAll: func(context.Context) ([]domain.Messageboard, error) {
				return []domain.Messageboard{open, restricted}, nil
			},
		},
	}
	router := chi.NewRouter()
	router.Get("/v1/boards", h.GetBoards)

	req := httptest.NewRequest(http.MethodGet, "/v1/boards", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Boards []domain.Messageboard `json:"boards"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	if assert.Len(t, resp.Boards, 1) {
		assert.Equal(t, open.Id, resp.Boards[0].Id)
	}
}

func TestDeleteBoardHandler(t *testing.T) {
	storage := &stubGateStorage{boards: map[string]*domain.Messageboard{"general": boardFixture()}}

	t.Run("moderator can delete", func(t *testing.T) {
		deleted := false
		h := &Handler{
			cfg:   testConfig(),
			gates: newTestGates(storage, allowAll),
			board: &MockBoardService{
				MockDelete: func(_ context.Context, id domain.BoardId) error {
					deleted = true
					assert.Equal(t, int64(3), id)
					return nil
				},
			},
		}
		router := chi.NewRouter()
		router.Delete("/v1/{board}", h.DeleteBoard)

		req := httptest.NewRequest(http.MethodDelete, "/v1/general", nil)
		signIn(req, 7, true)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, deleted)
	})

	t.Run("denied", func(t *testing.T) {
		h := &Handler{
			cfg:   testConfig(),
			gates: newTestGates(storage, denyAll),
			board: &MockBoardService{},
		}
		router := chi.NewRouter()
		router.Delete("/v1/{board}", h.DeleteBoard)

		req := httptest.NewRequest(http.MethodDelete, "/v1/general", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "not allowed to moderate this messageboard")
	})
}
