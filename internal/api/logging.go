package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
	"github.com/Deepakpottavatri06/CourseGen/internal/logger"
	"github.com/Deepakpottavatri06/CourseGen/internal/store"
)

// LoggingAPI is a decorator that records every backend call as a request event.
type LoggingAPI struct {
	inner     API
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithEventLog wraps an API with event logging. Failing to record an event
// never fails the call.
func WithEventLog(a API, repo store.EventRepo, log *logger.Logger) API {
	if log == nil {
		log = logger.Nop()
	}
	return &LoggingAPI{inner: a, eventRepo: repo, log: log}
}

func (l *LoggingAPI) Login(ctx context.Context, creds Credentials) (*Token, error) {
	ctx, done := l.begin(ctx, "login", http.MethodPost, "/login")
	tok, err := l.inner.Login(ctx, creds)
	done(err)
	return tok, err
}

func (l *LoggingAPI) Register(ctx context.Context, reg Registration) (*Account, error) {
	ctx, done := l.begin(ctx, "register", http.MethodPost, "/register")
	acct, err := l.inner.Register(ctx, reg)
	done(err)
	return acct, err
}

func (l *LoggingAPI) ListCourses(ctx context.Context) ([]course.Course, error) {
	ctx, done := l.begin(ctx, "list_courses", http.MethodGet, "/course-content")
	courses, err := l.inner.ListCourses(ctx)
	done(err)
	return courses, err
}

func (l *LoggingAPI) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	ctx, done := l.begin(ctx, "get_course", http.MethodGet, "/course-content/"+id)
	c, err := l.inner.GetCourse(ctx, id)
	done(err)
	return c, err
}

func (l *LoggingAPI) MarkSubtopicRead(ctx context.Context, courseID, subtopic string) error {
	ctx, done := l.begin(ctx, "mark_read", http.MethodPut, "/course-content/"+courseID+"/read")
	err := l.inner.MarkSubtopicRead(ctx, courseID, subtopic)
	done(err)
	return err
}

func (l *LoggingAPI) GenerateCourse(ctx context.Context, req course.GenerateRequest) (*Generated, error) {
	ctx, done := l.begin(ctx, "generate", http.MethodPost, "/generate-learning-content")
	out, err := l.inner.GenerateCourse(ctx, req)
	done(err)
	return out, err
}

// begin assigns a request id and returns the func that records the outcome.
func (l *LoggingAPI) begin(ctx context.Context, op, method, path string) (context.Context, func(error)) {
	id := uuid.NewString()
	ctx = WithRequestID(ctx, id)
	start := time.Now()

	return ctx, func(err error) {
		data := store.RequestEventData{
			RequestID: id,
			Operation: op,
			Method:    method,
			Path:      path,
			Status:    StatusOf(err),
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   err == nil,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}

		// Log the event but don't fail the request if logging fails.
		if logErr := l.eventRepo.AppendRequestEvent(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Warn("failed to log request event", "operation", op, "error", logErr)
		}
	}
}

// StatusOf returns the HTTP status implied by err: 200 for nil, the mapped
// status for known failures, and 0 when no response was received.
func StatusOf(err error) int {
	var se *StatusError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &se):
		return se.Status
	}
	return 0
}
