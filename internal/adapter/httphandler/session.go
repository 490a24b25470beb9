package httphandler

import (
	"net/http"

	"github.com/niksmo/bant-confirm/internal/core/domain"
	"github.com/niksmo/bant-confirm/internal/core/port"
)

// GET  v1/session (200 OK)
// POST v1/session/login JSON {"email", "password"} (200 OK, 400 Bad request)
// POST v1/session/signup/account JSON {"name", "email", "mobile", "password", "confirm_password"} (204 No content, 400 Bad request)
// POST v1/session/signup/profile JSON {"company", "location"} (200 OK, 400 Bad request, 409 Conflict)
// POST v1/session/reset JSON {"email"} (200 OK, 400 Bad request)
// POST v1/session/logout (204 No content)
// GET  v1/profile (200 OK, 401 Unauthorized)
// PUT  v1/profile JSON {"name", "mobile", "company", "location"} (200 OK, 401 Unauthorized)

type SessionHandler struct {
	session   port.Session
	assistant port.Assistant
	admin     port.Admin
}

func RegisterSession(
	mux *http.ServeMux, session port.Session, assistant port.Assistant, admin port.Admin,
) {
	h := SessionHandler{session, assistant, admin}
	mux.HandleFunc("GET /v1/session", h.GetSession)
	mux.HandleFunc("POST /v1/session/login", h.PostLogin)
	mux.HandleFunc("POST /v1/session/signup/account", h.PostSignupAccount)
	mux.HandleFunc("POST /v1/session/signup/profile", h.PostSignupProfile)
	mux.HandleFunc("POST /v1/session/reset", h.PostReset)
	mux.HandleFunc("POST /v1/session/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/profile", h.GetProfile)
	mux.HandleFunc("PUT /v1/profile", h.PutProfile)
}

func (h SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	var s Session
	if u, ok := h.session.CurrentUser(r.Context()); ok {
		dto := userFromDomain(*u)
		s.User = &dto
	}
	s.Greeting = h.assistant.Greeting(r.Context())
	s.Admin = h.admin.IsAdmin(r.Context())
	writeJSON(w, r, http.StatusOK, s)
}

func (h SessionHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostLogin"

	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	u, err := h.session.Login(r.Context(), domain.LoginForm(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, userFromDomain(u))
}

func (h SessionHandler) PostSignupAccount(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostSignupAccount"

	var req SignupAccountRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	if err := h.session.SignupAccount(r.Context(), domain.SignupAccountForm(req)); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionHandler) PostSignupProfile(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostSignupProfile"

	var req SignupProfileRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	u, err := h.session.SignupProfile(r.Context(), domain.SignupProfileForm(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, userFromDomain(u))
}

func (h SessionHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostReset"

	var req ResetRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	msg, err := h.session.ResetPassword(r.Context(), domain.ResetForm(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, MessageResponse{msg})
}

func (h SessionHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PostLogout"

	if err := h.session.Logout(r.Context()); err != nil {
		writeError(w, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.GetProfile"

	u, ok := h.session.CurrentUser(r.Context())
	if !ok {
		writeError(w, r, op, domain.ErrLoginRequired)
		return
	}
	writeJSON(w, r, http.StatusOK, userFromDomain(*u))
}

func (h SessionHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "SessionHandler.PutProfile"

	var req User
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, op, err)
		return
	}

	u, err := h.session.UpdateProfile(r.Context(), domain.User(req))
	if err != nil {
		writeError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, userFromDomain(u))
}
