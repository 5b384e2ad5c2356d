package transport

import (
	"net/http"
	"time"

	"giftoria/internal/domain"
	"giftoria/internal/middleware"
	"giftoria/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the mock login payload. Any well-formed
// email/role pair is accepted; there are no credentials to verify.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user"`
}

// SessionResponse represents the current visitor identity
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	IsAdmin       bool            `json:"is_admin"`
	Session       *domain.Session `json:"session,omitempty"`
	Token         string          `json:"token,omitempty"`
}

// SessionHandler handles HTTP requests for the mock auth flow
type SessionHandler struct {
	sessions  *store.Sessions
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessions *store.Sessions, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RegisterRoutes registers all session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", h.Current)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})
}

// Login creates a session for the supplied email and role and sets the
// session cookie the access guard reads.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Login(r.Context(), req.Email, req.Role)
	if err != nil {
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	token, err := middleware.IssueSessionToken(sess, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		IsAdmin:       sess.IsAdmin(),
		Session:       &sess,
		Token:         token,
	})
}

// Logout discards the current session and expires the cookie
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{})
}

// Current returns the visitor identity and its derived flags
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Current()
	if !ok {
		middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		Authenticated: true,
		IsAdmin:       sess.IsAdmin(),
		Session:       &sess,
	})
}
