package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boardkit/boardkit/internal/api"
	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

// GetActiveUsers lists recently active users, board-scoped when the
// route carries a {board} parameter and site-wide otherwise.
func (h *Handler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	users, err := g.ActiveUsers()
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, api.ActiveUsersResponse{Users: toActiveUsers(users)})
}

// GetUserActivity returns a user's recent posts. Visibility follows the
// user-read rule: the user themselves or a moderator.
func (h *Handler) GetUserActivity(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	userId, err := parseIntParam(chi.URLParam(r, "user"), "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := g.AuthorizeRead(&domain.Actor{Id: userId}); err != nil {
		apperr.WriteError(w, err)
		return
	}

	posts, err := h.activity.RecentPosts(r.Context(), userId)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, api.UserActivityResponse{Posts: posts})
}

func toActiveUsers(users []domain.Actor) []api.ActiveUser {
	out := make([]api.ActiveUser, 0, len(users))
	for _, u := range users {
		out = append(out, api.ActiveUser{Id: u.Id, Name: u.Name, Moderator: u.Moderator})
	}
	return out
}
