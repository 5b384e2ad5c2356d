package middleware

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// Default guard entry points
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// RequireAuth gates a page view by authentication. Anonymous visitors are
// redirected to the sign-in entry point carrying the originally requested
// location, so the flow can return there after login.
func RequireAuth(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSession(r.Context()); !ok {
				logger.Debug("Anonymous visitor redirected to login",
					zap.String("path", r.URL.Path),
				)
				target := LoginPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a page view by the privileged role. It assumes
// RequireAuth already ran; an authenticated visitor without the admin role
// is redirected home instead of to login.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok {
				target := LoginPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			if !sess.IsAdmin() {
				logger.Warn("Non-admin visitor redirected home",
					zap.String("role", sess.Role),
					zap.String("path", r.URL.Path),
				)
				http.Redirect(w, r, HomePath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthAPI is the JSON counterpart of RequireAuth for API routes:
// anonymous requests get 401 instead of a redirect.
func RequireAuthAPI(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetSession(r.Context()); !ok {
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminAPI is the JSON counterpart of RequireAdmin for API routes.
func RequireAdminAPI(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r.Context())
			if !ok {
				RespondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !sess.IsAdmin() {
				logger.Warn("Non-admin request to admin endpoint",
					zap.String("role", sess.Role),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
