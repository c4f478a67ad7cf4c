package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boardkit/boardkit/internal/api"
	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/gate"
	"github.com/boardkit/boardkit/internal/utils"
)

// GetModerators lists the moderators of the board in the route. The
// configured strategy decides what "moderator of" means.
func (h *Handler) GetModerators(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, err := g.Messageboard()
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := g.AuthorizeRead(board); err != nil {
		apperr.WriteError(w, err)
		return
	}

	mods, err := h.mods.ModeratorsOf(r.Context(), []domain.Messageboard{*board})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, api.ModeratorsResponse{Moderators: toActiveUsers(mods)})
}

func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, topic, err := h.moderatedTopic(g, r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.topic.Delete(r.Context(), board.Id, topic.Id); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetTopicLocked(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, topic, err := h.moderatedTopic(g, r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	var body api.SetLockedRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.topic.SetLocked(r.Context(), board.Id, topic.Id, body.Locked); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	_, topic, err := h.moderatedTopic(g, r)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	postId, err := parseIntParam(chi.URLParam(r, "post"), "post")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.post.Delete(r.Context(), topic.Id, postId); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SetModeratorFlag grants or revokes the site-wide moderator flag.
// Only an existing moderator may change it.
func (h *Handler) SetModeratorFlag(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)
	if err := g.RequireLogin(); err != nil {
		apperr.WriteError(w, err)
		return
	}

	moderated, err := h.mods.CanModerate(r.Context(), g.Actor())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if len(moderated) == 0 {
		apperr.WriteError(w, apperr.Denial(domain.KindUser, apperr.ActionModerate))
		return
	}

	userId, err := parseIntParam(chi.URLParam(r, "user"), "user")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body struct {
		Moderator bool `json:"moderator"`
	}
	if err := utils.Decode(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.users.SetModeratorFlag(r.Context(), userId, body.Moderator); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// moderatedTopic resolves the routed board and topic and checks the
// moderate permission on the topic.
func (h *Handler) moderatedTopic(g *gate.Gate, r *http.Request) (*domain.Messageboard, *domain.Topic, error) {
	board, err := g.Messageboard()
	if err != nil {
		return nil, nil, err
	}

	topicId, err := parseIntParam(chi.URLParam(r, "topic"), "topic")
	if err != nil {
		return nil, nil, &apperr.StatusError{Message: err.Error(), Code: http.StatusBadRequest}
	}

	topic, err := h.topic.Get(r.Context(), board.Id, topicId, 1)
	if err != nil {
		return nil, nil, err
	}
	if err := g.AuthorizeModerate(topic); err != nil {
		return nil, nil, err
	}
	return board, topic, nil
}
