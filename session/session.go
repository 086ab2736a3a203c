// Package session owns the authentication token and the identity decoded
// from it. The store is the single writer of session state: it is populated
// once at startup from persisted storage, replaced wholesale on login or
// register, and cleared on logout or on any authorization failure escalated
// by the gateway. Consumers only see read-derived snapshots and predicates.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	studio "github.com/portfoliostudio/studio.go"
)

// LoginPath is the unauthenticated entry point every forced logout
// navigates to.
const LoginPath = "/login"

// Identity is the decoded claim set of a session token: who the session is
// for and which role it carries. The role is immutable for the lifetime of
// the session.
type Identity struct {
	Subject string
	Role    studio.Role
}

// Navigator is the navigation side effect the store triggers on logout.
// The app router is the canonical implementation.
type Navigator interface {
	NavigateTo(path string)
}

// ErrBadToken is returned when a token cannot be decoded into an identity.
var ErrBadToken = errors.New("session: token did not decode into an identity")

// DecodeIdentity decodes a token's claims without verifying its signature;
// the client has no signing key and the server remains the security
// boundary. Expired tokens fail the decode.
func DecodeIdentity(token string) (Identity, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrBadToken)
	}

	role, _ := claims["role"].(string)
	if !studio.Role(role).Valid() {
		return Identity{}, fmt.Errorf("%w: missing or unknown role", ErrBadToken)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		return Identity{}, fmt.Errorf("%w: token expired", ErrBadToken)
	}

	return Identity{Subject: subject, Role: studio.Role(role)}, nil
}

// Store holds the current session. It implements studio.TokenSource so the
// gateway reads the token it attaches from here, and its HandleUnauthorized
// is the gateway's 401 escalation target.
type Store struct {
	mu      sync.Mutex
	storage TokenStorage
	nav     Navigator
	logger  zerolog.Logger

	token    string
	identity *Identity
	loading  bool
}

// NewStore creates a session store backed by storage. The store starts in
// the loading state; role-gated content must not render until Initialize
// has run.
func NewStore(storage TokenStorage, nav Navigator, logger zerolog.Logger) *Store {
	return &Store{
		storage: storage,
		nav:     nav,
		logger:  logger,
		loading: true,
	}
}

// Initialize reads the persisted token, if any, and decodes it into an
// identity. A malformed or expired token is never surfaced as an error: it
// is purged and the session left anonymous, with a diagnostic log. The
// loading state always terminates, success or failure.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	token, err := s.storage.Load()
	if err != nil {
		s.logger.Debug().Err(err).Msg("no persisted session")
		return
	}
	if token == "" {
		return
	}

	identity, err := DecodeIdentity(token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("persisted token undecodable, purging")
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn().Err(clearErr).Msg("failed to purge bad token")
		}
		return
	}

	s.token = token
	s.identity = &identity
}

// Login persists the token and replaces the session atomically. There is no
// intermediate state where the token is set but the identity is stale.
func (s *Store) Login(token string) error {
	identity, err := DecodeIdentity(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	s.token = token
	s.identity = &identity
	s.logger.Info().Str("subject", identity.Subject).Str("role", string(identity.Role)).Msg("session established")
	return nil
}

// Logout purges the persisted token, clears the identity, and navigates to
// the login entry point. It is idempotent: once the session is anonymous,
// further calls do nothing, so overlapping 401s from concurrent in-flight
// calls trigger exactly one redirect.
func (s *Store) Logout() {
	s.mu.Lock()
	if s.token == "" && s.identity == nil {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.identity = nil
	if err := s.storage.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted token")
	}
	s.logger.Info().Msg("session cleared")
	s.mu.Unlock()

	if s.nav != nil {
		s.nav.NavigateTo(LoginPath)
	}
}

// HandleUnauthorized is the gateway's 401 escalation target.
func (s *Store) HandleUnauthorized() {
	s.Logout()
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns a snapshot of the current identity. ok is false while
// anonymous.
func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// IsRole reports whether the current identity carries the given role. It
// returns false, not an error, when the session is anonymous.
func (s *Store) IsRole(role studio.Role) bool {
	id, ok := s.Identity()
	return ok && id.Role == role
}

// Loading reports whether the initial session load is still in progress.
// Role-gated content must not render while this is true.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}
