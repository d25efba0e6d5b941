package handlers

import (
	"net/http"

	"github.com/Harshverma1208/smartech/internal/auth"
	"github.com/Harshverma1208/smartech/internal/config"
	"github.com/Harshverma1208/smartech/internal/httpx"
	"github.com/Harshverma1208/smartech/internal/session"
)

type AuthHandler struct {
	Sessions *session.Collaborator
	Cfg      config.Config
}

func NewAuthHandler(sessions *session.Collaborator, cfg config.Config) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Cfg: cfg}
}

type userPayload struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Login: POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" || body.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", "email and password are required")
		return
	}
	u, err := h.Sessions.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		httpx.Fault(w, err)
		return
	}
	// The cookie token must come from the user this request authenticated,
	// never from shared provider state.
	token, err := session.IssueToken(h.Cfg.SessionSecret, u, h.Cfg.SessionTTL)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "could not establish session")
		return
	}
	auth.CreateSession(w, token, h.Cfg.SessionTTL)
	httpx.JSON(w, http.StatusOK, userPayload{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Logout: POST /logout. The local session always ends, whatever the remote
// invalidation did.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.SignOut(r.Context())
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Session: GET /session. The current session state for the caller.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.UserFromContext(r.Context()); ok {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"state": session.Authenticated.String(),
			"user":  userPayload{ID: u.ID, Email: u.Email, Name: u.Name},
		})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"state": session.Anonymous.String()})
}
