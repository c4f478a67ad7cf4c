package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/boardkit/boardkit/internal/config"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/gate"
	"github.com/boardkit/boardkit/internal/logger"
	"github.com/boardkit/boardkit/internal/moderation"
	"github.com/boardkit/boardkit/internal/service"
)

// UserAdmin is the slice of user storage the handler needs directly.
type UserAdmin interface {
	SetModeratorFlag(ctx context.Context, id domain.UserId, moderator bool) error
	PreferencesByUser(ctx context.Context, id domain.UserId) (*domain.Preferences, error)
}

type Handler struct {
	gates    *gate.Builder
	auth     service.AuthService
	board    service.BoardService
	topic    service.TopicService
	post     service.PostService
	activity service.UserActivityService
	mods     moderation.Strategy
	users    UserAdmin
	cfg      *config.Config
}

func New(
	gates *gate.Builder,
	auth service.AuthService,
	board service.BoardService,
	topic service.TopicService,
	post service.PostService,
	activity service.UserActivityService,
	mods moderation.Strategy,
	users UserAdmin,
	cfg *config.Config,
) *Handler {
	return &Handler{gates, auth, board, topic, post, activity, mods, users, cfg}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("response encoding failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

func pageParam(r *http.Request) int {
	pageQuery := r.URL.Query().Get("page")
	if pageQuery == "" {
		return 1
	}
	page, err := parseIntParam(pageQuery, "page")
	if err != nil || page < 1 {
		return 1
	}
	return int(page)
}
