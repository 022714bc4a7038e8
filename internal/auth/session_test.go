package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepakpottavatri06/CourseGen/internal/api"
)

type memStore struct {
	token    string
	loadErr  error
	clearErr error
	cleared  bool
}

func (m *memStore) SaveToken(_ context.Context, tok string) error { m.token = tok; return nil }
func (m *memStore) LoadToken(context.Context) (string, error)     { return m.token, m.loadErr }

func (m *memStore) ClearToken(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	m.cleared = true
	return nil
}

type fakeAuth struct {
	token    string
	err      error
	logins   []api.Credentials
	accounts []api.Registration
}

func (f *fakeAuth) Login(_ context.Context, c api.Credentials) (*api.Token, error) {
	f.logins = append(f.logins, c)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Token{AccessToken: f.token, TokenType: "bearer"}, nil
}

func (f *fakeAuth) Register(_ context.Context, r api.Registration) (*api.Account, error) {
	f.accounts = append(f.accounts, r)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Account{Email: r.Email, Name: r.Name}, nil
}

func signed(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return tok
}

func TestNewSessionRestoresToken(t *testing.T) {
	st := &memStore{token: "persisted"}
	s, err := NewSession(context.Background(), st)
	require.NoError(t, err)
	assert.Equal(t, "persisted", s.Token())
	assert.True(t, s.Authenticated(), "opaque tokens count as present")
}

func TestNewSessionLoadError(t *testing.T) {
	_, err := NewSession(context.Background(), &memStore{loadErr: errors.New("locked")})
	assert.Error(t, err)
}

func TestEmptySessionIsNotAuthenticated(t *testing.T) {
	s, err := NewSession(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	_, err = s.Require()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthenticatedHonoursExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := NewSession(context.Background(), nil)
	s.now = func() time.Time { return now }

	require.NoError(t, s.set(context.Background(), signed(t, "ada@example.com", now.Add(time.Hour))))
	assert.True(t, s.Authenticated())
	assert.Equal(t, "ada@example.com", s.Subject())
	exp, ok := s.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())

	require.NoError(t, s.set(context.Background(), signed(t, "ada@example.com", now.Add(-time.Minute))))
	assert.False(t, s.Authenticated())
}

func TestLoginPersistsToken(t *testing.T) {
	st := &memStore{}
	s, _ := NewSession(context.Background(), st)
	a := &fakeAuth{token: "issued"}

	err := s.Login(context.Background(), a, "  ada@example.com ", "pw")

	require.NoError(t, err)
	assert.Equal(t, "issued", s.Token())
	assert.Equal(t, "issued", st.token)
	require.Len(t, a.logins, 1)
	assert.Equal(t, "ada@example.com", a.logins[0].Email)
}

func TestLoginValidatesBeforeCalling(t *testing.T) {
	s, _ := NewSession(context.Background(), nil)
	a := &fakeAuth{token: "issued"}

	err := s.Login(context.Background(), a, "not-an-email", "")

	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.ElementsMatch(t, []string{"a valid email is required", "password is required"}, ie.Problems)
	assert.Empty(t, a.logins)
}

func TestLoginFailureKeepsSessionEmpty(t *testing.T) {
	s, _ := NewSession(context.Background(), nil)
	a := &fakeAuth{err: &api.StatusError{Status: 400, Message: "Invalid credentials"}}

	err := s.Login(context.Background(), a, "ada@example.com", "wrong")

	assert.Equal(t, "Invalid credentials", api.Message(err, ""))
	assert.Empty(t, s.Token())
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	st := &memStore{}
	s, _ := NewSession(context.Background(), st)
	a := &fakeAuth{token: "issued"}

	acct, err := s.Register(context.Background(), a, "ada@example.com", "Ada", "pw")

	require.NoError(t, err)
	assert.Equal(t, "Ada", acct.Name)
	assert.Empty(t, s.Token())
	assert.Empty(t, a.logins)
}

func TestRegisterRejectsShortName(t *testing.T) {
	s, _ := NewSession(context.Background(), nil)
	a := &fakeAuth{}

	_, err := s.Register(context.Background(), a, "ada@example.com", "A", "pw")

	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"name must be 2 to 100 characters"}, ie.Problems)
	assert.Empty(t, a.accounts)
}

func TestLogoutClearsStore(t *testing.T) {
	st := &memStore{token: "persisted"}
	s, _ := NewSession(context.Background(), st)

	require.NoError(t, s.Logout(context.Background()))

	assert.Empty(t, s.Token())
	assert.True(t, st.cleared)
	assert.False(t, s.Authenticated())
}

func TestExpireOnlyOnUnauthorized(t *testing.T) {
	st := &memStore{token: "persisted"}
	s, _ := NewSession(context.Background(), st)

	expired, err := s.Expire(context.Background(), api.ErrNotFound)
	assert.False(t, expired)
	assert.NoError(t, err)
	assert.Equal(t, "persisted", s.Token())

	expired, err = s.Expire(context.Background(), api.ErrUnauthorized)
	assert.True(t, expired)
	assert.NoError(t, err)
	assert.Empty(t, s.Token())
	assert.True(t, st.cleared)
}

func TestExpireReportsClearFailure(t *testing.T) {
	diskErr := errors.New("disk full")
	st := &memStore{token: "persisted", clearErr: diskErr}
	s, _ := NewSession(context.Background(), st)

	expired, err := s.Expire(context.Background(), api.ErrUnauthorized)
	assert.True(t, expired)
	assert.ErrorIs(t, err, diskErr)
	assert.Empty(t, s.Token(), "the rejected token is dropped from memory")
	assert.Equal(t, "persisted", st.token)
}
