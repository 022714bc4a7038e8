// Package auth holds the single authentication context of the client.
// A Session is created once and passed explicitly to everything that
// needs the bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
)

// ErrNotAuthenticated is returned when an operation needs a token and the
// session holds none, or only an expired one.
var ErrNotAuthenticated = errors.New("not logged in")

// TokenStore persists the token between runs.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}

// Authenticator is the slice of the backend that issues tokens.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (*api.Token, error)
	Register(ctx context.Context, reg api.Registration) (*api.Account, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Session holds the current bearer token. It is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	store TokenStore
	now   func() time.Time
}

// NewSession restores the persisted token, if any. store may be nil for an
// in-memory session.
func NewSession(ctx context.Context, store TokenStore) (*Session, error) {
	s := &Session{store: store, now: time.Now}
	if store == nil {
		return s, nil
	}
	tok, err := store.LoadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	s.token = tok
	return s, nil
}

// Token returns the raw bearer token, or "" when logged out. Session
// implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a usable token is present. Tokens that parse
// as JWTs must not be past their exp claim; opaque tokens count as present.
func (s *Session) Authenticated() bool {
	tok := s.Token()
	if tok == "" {
		return false
	}
	exp, ok := expiry(tok)
	return !ok || s.now().Before(exp)
}

// ExpiresAt returns the token's exp claim, if it has one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return expiry(s.Token())
}

// Subject returns the token's sub claim (the account email), or "".
func (s *Session) Subject() string {
	claims, ok := parseClaims(s.Token())
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// Require returns the token or ErrNotAuthenticated.
func (s *Session) Require() (string, error) {
	if !s.Authenticated() {
		return "", ErrNotAuthenticated
	}
	return s.Token(), nil
}

// Login exchanges credentials for a token and persists it.
func (s *Session) Login(ctx context.Context, a Authenticator, email, password string) error {
	creds := api.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validateInput(creds); err != nil {
		return err
	}

	tok, err := a.Login(ctx, creds)
	if err != nil {
		return err
	}
	return s.set(ctx, tok.AccessToken)
}

// Register creates an account. It does not log in; the caller sends the user
// to the login step afterwards.
func (s *Session) Register(ctx context.Context, a Authenticator, email, name, password string) (*api.Account, error) {
	reg := api.Registration{
		Email:    strings.TrimSpace(email),
		Name:     strings.TrimSpace(name),
		Password: password,
	}
	if err := validateInput(reg); err != nil {
		return nil, err
	}
	return a.Register(ctx, reg)
}

// Logout forgets the token, in memory and on disk.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.ClearToken(ctx)
}

// Expire logs out when err means the server rejected the token. It reports
// whether it did, and any failure to clear the persisted token. The
// in-memory token is dropped either way.
func (s *Session) Expire(ctx context.Context, err error) (bool, error) {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false, nil
	}
	if err := s.Logout(ctx); err != nil {
		return true, fmt.Errorf("clear rejected token: %w", err)
	}
	return true, nil
}

func (s *Session) set(ctx context.Context, tok string) error {
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.SaveToken(ctx, tok); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func parseClaims(tok string) (jwt.MapClaims, bool) {
	if tok == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func expiry(tok string) (time.Time, bool) {
	claims, ok := parseClaims(tok)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// InputError lists the form fields that failed validation.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ie := &InputError{}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Email":
			ie.Problems = append(ie.Problems, "a valid email is required")
		case "Name":
			ie.Problems = append(ie.Problems, "name must be 2 to 100 characters")
		case "Password":
			ie.Problems = append(ie.Problems, "password is required")
		default:
			ie.Problems = append(ie.Problems, fe.Error())
		}
	}
	return ie
}
