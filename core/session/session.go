package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/karciss/Frontend-Proyecto-Red-Social-sub001/core"
)

// Authenticator is the slice of the gateway the session depends on.
type Authenticator interface {
	// Authenticate exchanges credentials for a bearer token
	// (POST /auth/login, form-encoded).
	Authenticate(ctx context.Context, username, password string) (token string, err error)
	// Me fetches the authenticated profile (GET /auth/me).
	Me(ctx context.Context) (User, error)
	// SetToken installs the bearer token on subsequent requests.
	SetToken(token string)
}

// Session holds the current authenticated user. It is created at login,
// passed explicitly to every controller, and torn down at logout. There is
// no package-level singleton.
type Session struct {
	mu     sync.RWMutex
	user   User
	token  string
	claims *Claims
	active bool
}

// Login authenticates against the backend, installs the token on the
// gateway, parses the token claims and refreshes the profile.
func Login(ctx context.Context, auth Authenticator, conf *core.Config, username, password string) (*Session, error) {
	token, err := auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	auth.SetToken(token)

	var secret []byte
	if conf.Env == "TEST" || conf.Env == "DEV" {
		secret = []byte(conf.SecretKey)
	}
	claims, err := ParseClaims(token, secret)
	if err != nil {
		return nil, errors.Wrap(err, "parsing login token")
	}

	s := &Session{
		token:  token,
		claims: claims,
		active: true,
		user: User{
			ID:    claims.Subject,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
			CI:    claims.CI,
		},
	}

	// the profile endpoint is authoritative for display info; the claims
	// only bootstrap identity
	if usr, err := auth.Me(ctx); err == nil {
		s.mu.Lock()
		if usr.CI == "" {
			usr.CI = s.user.CI
		}
		s.user = usr
		s.mu.Unlock()
	}
	return s, nil
}

// TestSession returns an active session for usr without hitting the
// backend. Test helper, the counterpart of core.TestConfig.
func TestSession(usr User) *Session {
	return &Session{user: usr, token: "test-token", active: true}
}

func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Logout tears the session down. Controllers holding the handle observe the
// inactive state; a new Session is built on the next login.
func (s *Session) Logout(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.token = ""
	s.claims = nil
	s.user = User{}
	auth.SetToken("")
}
