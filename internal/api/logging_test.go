package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/store"
)

type recordingRepo struct {
	events []store.RequestEventData
	err    error
}

func (r *recordingRepo) AppendRequestEvent(_ context.Context, data store.RequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryRequestEvents(context.Context, store.QueryOpts) ([]store.RequestEvent, error) {
	return nil, nil
}

func (r *recordingRepo) GetRequestEvent(context.Context, int) (*store.RequestEvent, error) {
	return nil, nil
}

// stubAPI returns canned results and remembers the request id it saw.
type stubAPI struct {
	err       error
	requestID string
}

func (s *stubAPI) Login(ctx context.Context, _ Credentials) (*Token, error) {
	s.requestID = RequestIDFrom(ctx)
	return &Token{AccessToken: "t"}, s.err
}

func (s *stubAPI) Register(context.Context, Registration) (*Account, error) { return nil, s.err }

func (s *stubAPI) ListCourses(context.Context) ([]course.Course, error) { return nil, s.err }

func (s *stubAPI) GetCourse(ctx context.Context, _ string) (*course.Course, error) {
	s.requestID = RequestIDFrom(ctx)
	return nil, s.err
}

func (s *stubAPI) MarkSubtopicRead(context.Context, string, string) error { return s.err }

func (s *stubAPI) GenerateCourse(context.Context, course.GenerateRequest) (*Generated, error) {
	return nil, s.err
}

func TestWithEventLog_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	inner := &stubAPI{}
	a := WithEventLog(inner, repo, nil)

	if _, err := a.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Operation != "login" || e.Method != "POST" || e.Path != "/login" {
		t.Errorf("unexpected event: %+v", e)
	}
	if !e.Success || e.Status != 200 {
		t.Errorf("expected success 200, got %+v", e)
	}
	if e.RequestID == "" || e.RequestID != inner.requestID {
		t.Errorf("request id %q not propagated (inner saw %q)", e.RequestID, inner.requestID)
	}
}

func TestWithEventLog_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	a := WithEventLog(&stubAPI{err: ErrNotFound}, repo, nil)

	_, err := a.GetCourse(context.Background(), "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	e := repo.events[0]
	if e.Success || e.Status != 404 || e.Path != "/course-content/c1" || e.ErrorMessage == "" {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestWithEventLog_RepoFailureDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	a := WithEventLog(&stubAPI{}, repo, nil)

	if err := a.MarkSubtopicRead(context.Background(), "c1", "Ownership"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 200},
		{ErrNotFound, 404},
		{ErrUnauthorized, 401},
		{&StatusError{Status: 503}, 503},
		{errors.New("dial tcp: refused"), 0},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
