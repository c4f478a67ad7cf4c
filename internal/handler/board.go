package handler

import (
	"net/http"

	"github.com/boardkit/boardkit/internal/api"
	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
	"github.com/boardkit/boardkit/internal/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)
	if err := g.RequireLogin(); err != nil {
		apperr.WriteError(w, err)
		return
	}

	// creating boards is a site-moderator action
	moderated, err := h.mods.CanModerate(r.Context(), g.Actor())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if len(moderated) == 0 {
		apperr.WriteError(w, apperr.Denial(domain.KindMessageboard, apperr.ActionCreate))
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	data := domain.BoardCreationData{Slug: body.Slug, Name: body.Name, Description: body.Description}
	if len(body.AllowedEmails) > 0 {
		allowed := domain.Emails(body.AllowedEmails)
		data.AllowedEmails = &allowed
	}

	board, err := h.board.Create(r.Context(), data)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.BoardResponse{Board: board})
}

// GetBoards lists the boards the acting user may read.
func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	boards, err := h.board.GetAll(r.Context())
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	visible := []domain.Messageboard{}
	for i := range boards {
		if err := g.AuthorizeRead(&boards[i]); err == nil {
			visible = append(visible, boards[i])
		}
	}

	writeJSON(w, api.BoardListResponse{Boards: visible})
}

// GetBoard returns the board plus one page of its topics.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
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
	defer g.UpdateActivity()

	topics, err := h.topic.List(r.Context(), board.Id, pageParam(r))
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	writeJSON(w, struct {
		api.BoardResponse
		Topics []domain.Topic `json:"topics"`
	}{api.BoardResponse{Board: board}, topics})
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, err := g.Messageboard()
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := g.AuthorizeModerate(board); err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.board.Delete(r.Context(), board.Id); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) SetBoardLocked(w http.ResponseWriter, r *http.Request) {
	g := h.gates.ForRequest(r)

	board, err := g.Messageboard()
	if err != nil {
		apperr.WriteError(w, err)
		return
	}
	if err := g.AuthorizeModerate(board); err != nil {
		apperr.WriteError(w, err)
		return
	}

	var body api.SetLockedRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	if err := h.board.SetLocked(r.Context(), board.Id, body.Locked); err != nil {
		apperr.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
