package handler

import (
	"net/http"

	"github.com/boardkit/boardkit/internal/api"
	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/identity"
	"github.com/boardkit/boardkit/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	actor, err := h.auth.Register(r.Context(), body.Email, body.Name, body.Password)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, api.UserResponse{Id: actor.Id, Email: actor.Email, Name: actor.Name, Moderator: actor.Moderator})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		apperr.WriteError(w, err)
		return
	}

	actor, token, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		apperr.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     identity.AccessTokenCookie,
		Value:    token,
		MaxAge:   int(h.cfg.Public.JwtTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, api.UserResponse{Id: actor.Id, Email: actor.Email, Name: actor.Name, Moderator: actor.Moderator})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     identity.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusOK)
}

// Me returns the resolved actor for the request, anonymous included.
// Signed-in users also get their stored preferences.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := h.gates.ForRequest(r).Actor()
	resp := api.UserResponse{Id: actor.Id, Email: actor.Email, Name: actor.Name, Moderator: actor.Moderator}

	if actor.SignedIn() {
		prefs, err := h.users.PreferencesByUser(r.Context(), actor.Id)
		if err != nil {
			apperr.WriteError(w, err)
			return
		}
		resp.Preferences = prefs
	}
	writeJSON(w, resp)
}
