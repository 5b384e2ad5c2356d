package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"giftoria/internal/domain"
	"giftoria/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionSlot = "session"

// Sessions owns the current visitor identity. The state machine has two
// states: anonymous (no persisted session) and authenticated. Login cannot
// fail in this mock model; no credential verification happens anywhere.
type Sessions struct {
	mu      sync.RWMutex
	slots   *storage.Slots
	logger  *zap.Logger
	current *domain.Session
}

// NewSessions loads any persisted session. A blob that fails to parse is
// treated as no session.
func NewSessions(ctx context.Context, slots *storage.Slots, logger *zap.Logger) (*Sessions, error) {
	s := &Sessions{
		slots:  slots,
		logger: logger,
	}

	data, ok, err := slots.Read(ctx, sessionSlot)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if ok {
		var sess domain.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			logger.Warn("Discarding malformed session data", zap.Error(err))
		} else {
			s.current = &sess
		}
	}

	return s, nil
}

// Login creates a session for the given email and role. The role defaults
// to the unprivileged role when empty. This is a mock boundary: any
// email/role pair is accepted without verification.
func (s *Sessions) Login(ctx context.Context, email, role string) (domain.Session, error) {
	if role == "" {
		role = domain.RoleUser
	}

	sess := domain.Session{
		ID:    uuid.New().String(),
		Email: email,
		Name:  domain.DisplayName(email),
		Role:  role,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.slots.Write(ctx, sessionSlot, data); err != nil {
		return domain.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = &sess
	s.logger.Info("Visitor logged in",
		zap.String("session_id", sess.ID),
		zap.String("role", sess.Role),
	)
	return sess, nil
}

// Logout discards the current session. Logging out while anonymous is a
// no-op.
func (s *Sessions) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	if err := s.slots.Clear(ctx, sessionSlot); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info("Visitor logged out", zap.String("session_id", s.current.ID))
	s.current = nil
	return nil
}

// Current returns the active session, if any.
func (s *Sessions) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

// IsAuthenticated reports whether a session is present.
func (s *Sessions) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// IsAdmin reports whether a session is present and carries the privileged
// role.
func (s *Sessions) IsAdmin() bool {
	sess, ok := s.Current()
	return ok && sess.IsAdmin()
}
