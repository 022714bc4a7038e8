package store

import (
	"context"
	"time"
)

// SessionTokenKey is the settings key holding the persisted bearer token.
const SessionTokenKey = "session.token"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// TokenRepo persists the session token across runs.
type TokenRepo interface {
	// SaveToken replaces the stored token.
	SaveToken(ctx context.Context, token string) error

	// LoadToken returns the stored token, or "" if none.
	LoadToken(ctx context.Context) (string, error)

	// ClearToken removes the stored token. Clearing twice is not an error.
	ClearToken(ctx context.Context) error
}

// RequestEventData captures the data for a single backend API call.
type RequestEventData struct {
	RequestID    string
	Operation    string
	Method       string
	Path         string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestEvent is a persisted RequestEventData.
type RequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RequestEventData
}

// EventRepo provides append and query access to request events.
type EventRepo interface {
	// AppendRequestEvent records a backend API call.
	AppendRequestEvent(ctx context.Context, data RequestEventData) error

	// QueryRequestEvents returns events newest first.
	QueryRequestEvents(ctx context.Context, opts QueryOpts) ([]RequestEvent, error)

	// GetRequestEvent returns the event with the given id, or nil if none.
	GetRequestEvent(ctx context.Context, id int) (*RequestEvent, error)
}
