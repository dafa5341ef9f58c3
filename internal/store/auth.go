package store

import (
	"context"

	"github.com/rs/zerolog"

	"invoicectl/internal/invoice"
	"invoicectl/internal/logger"
	"invoicectl/internal/session"
	"invoicectl/pkg/models"
)

// AuthStore owns the authenticated session lifecycle. Tokens themselves
// live in the session (shared with the API gateway); the store drives the
// transitions between logged-in and logged-out.
type AuthStore struct {
	backend AuthBackend
	session *session.Session
	log     zerolog.Logger
}

// NewAuthStore builds the auth store over the gateway and the shared
// session.
func NewAuthStore(backend AuthBackend, sess *session.Session) *AuthStore {
	return &AuthStore{
		backend: backend,
		session: sess,
		log:     logger.WithComponent("auth-store"),
	}
}

// Login exchanges credentials for tokens, fetches the profile, and
// persists both. Gateway errors propagate verbatim for inline display.
func (s *AuthStore) Login(ctx context.Context, email, password string) (models.User, error) {
	if v := invoice.ValidateLogin(email, password); !v.Empty() {
		return models.User{}, &invoice.ValidationFailedError{Violations: v}
	}

	if err := s.backend.Login(ctx, email, password); err != nil {
		return models.User{}, err
	}
	user, err := s.backend.Me(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err := s.session.SetUser(user); err != nil {
		return models.User{}, err
	}
	s.log.Info().Str("email", user.Email).Msg("Logged in")
	return user, nil
}

// Register creates the account, then performs a normal login.
func (s *AuthStore) Register(ctx context.Context, name, email, password, confirmPassword string) (models.User, error) {
	if v := invoice.ValidateRegister(name, email, password, confirmPassword); !v.Empty() {
		return models.User{}, &invoice.ValidationFailedError{Violations: v}
	}

	if err := s.backend.Register(ctx, name, email, password); err != nil {
		return models.User{}, err
	}
	return s.Login(ctx, email, password)
}

// Logout discards tokens and profile and clears the persisted session.
func (s *AuthStore) Logout() error {
	if err := s.session.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("Logged out")
	return nil
}

// User returns the persisted profile, nil when logged out.
func (s *AuthStore) User() *models.User {
	return s.session.User()
}

// LoggedIn reports whether a session is active.
func (s *AuthStore) LoggedIn() bool {
	return s.session.LoggedIn()
}
