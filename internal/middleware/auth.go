package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"giftoria/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "giftoria_session"

// SessionSource resolves the currently persisted session. Satisfied by
// store.Sessions.
type SessionSource interface {
	Current() (domain.Session, bool)
}

// sessionClaims are the JWT claims carried by a session token.
type sessionClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a token for the given session. The token only
// proves possession; the guard always cross-checks the persisted session,
// so logout invalidates outstanding tokens.
func IssueSessionToken(sess domain.Session, secret string, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		SessionID: sess.ID,
		Role:      sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SessionMiddleware resolves the visitor identity into the request context.
// Requests without a valid token pass through anonymous; enforcement is the
// guard's job, not this middleware's.
func SessionMiddleware(secret string, sessions SessionSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Debug("Session token rejected", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := token.Claims.(*sessionClaims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			// The token is only honored while its session is still the
			// persisted one; logout discards the slot and with it the token.
			sess, ok := sessions.Current()
			if !ok || sess.ID != claims.SessionID {
				logger.Debug("Session token does not match persisted session")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the resolved session from the request context.
func GetSession(ctx context.Context) (domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(domain.Session)
	return sess, ok
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
