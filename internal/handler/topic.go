package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boardkit/boardkit/internal/api"
	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/utils"
)

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, err := g.Messageboard()
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := g.AuthorizeCreate(board); err != nil {
		apperr.WriteError(w, err)
		return
	}

	var body api.CreateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	topic, err := h.topic.Create(r.Context(), domain.TopicCreationData{
		BoardId:      board.Id,
		Title:        body.Title,
		Author:       g.Actor().Id,
		Private:      body.Private,
		Participants: body.Participants,
		FirstPost:    domain.PostCreationData{Body: body.Body, Author: g.Actor().Id},
	})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	g.UpdateActivity()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.TopicResponse{Topic: topic})
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
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

	topicId, err := parseIntParam(chi.URLParam(r, "topic"), "topic")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	topic, err := h.topic.Get(r.Context(), board.Id, topicId, pageParam(r))
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	// private topics are visible to participants and moderators only
	if err := g.AuthorizeRead(topic); err != nil {
		apperr.WriteError(w, err)
		return
	}
	defer g.UpdateActivity()

	writeJSON(w, api.TopicResponse{Topic: topic})
}

// GetPrivateTopics lists private topics the acting user participates in.
func (h *Handler) GetPrivateTopics(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)
	if err := g.RequireLogin(); err != nil {
		apperr.WriteError(w, err)
		return
	}

	topics, err := h.topic.ListPrivate(r.Context(), g.Actor().Id, pageParam(r))
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	writeJSON(w, api.TopicListResponse{Topics: topics})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
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

	topicId, err := parseIntParam(chi.URLParam(r, "topic"), "topic")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	topic, err := h.topic.Get(r.Context(), board.Id, topicId, 1)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := g.AuthorizeCreate(topic); err != nil {
		apperr.WriteError(w, err)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), domain.PostCreationData{
		TopicId: topic.Id,
		Author:  g.Actor().Id,
		Body:    body.Body,
	})
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	g.UpdateActivity()

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.PostResponse{Post: post})
}
