package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
)

// DefaultTimeout bounds every request unless overridden with WithTimeout.
const DefaultTimeout = 30 * time.Second

// API is the full set of backend operations the client uses.
type API interface {
	Login(ctx context.Context, creds Credentials) (*Token, error)
	Register(ctx context.Context, reg Registration) (*Account, error)
	ListCourses(ctx context.Context) ([]course.Course, error)
	GetCourse(ctx context.Context, id string) (*course.Course, error)
	MarkSubtopicRead(ctx context.Context, courseID, subtopic string) error
	GenerateCourse(ctx context.Context, req course.GenerateRequest) (*Generated, error)
}

// TokenSource supplies the bearer token for authorized calls.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client talks to the course-generation backend over HTTP.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New creates a Client for baseURL. tokens may be nil for a client that only
// logs in and registers.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(DefaultTimeout).
			SetHeader("Accept", "application/json"),
		tokens: tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// request starts a request carrying the request id from ctx.
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", RequestIDFrom(ctx))
}

// authorized starts a request carrying the bearer token. A missing token
// fails without contacting the server.
func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	var token string
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	if token == "" {
		return nil, ErrUnauthorized
	}
	return c.request(ctx).SetAuthToken(token), nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*Token, error) {
	resp, err := c.request(ctx).SetBody(creds).Post("/login")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	tok, err := decode[Token](resp.Body())
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, errors.New("login: response carried no access token")
	}
	return &tok, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*Account, error) {
	resp, err := c.request(ctx).SetBody(reg).Post("/register")
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := checkStatus(resp, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	acct, err := decode[Account](resp.Body())
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.Get("/course-content")
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}
	if isJSONNull(resp.Body()) {
		return nil, nil
	}
	return decode[[]course.Course](resp.Body())
}

// GetCourse fetches one course document. A null body is reported as
// ErrNotFound.
func (c *Client) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetPathParam("id", id).Get("/course-content/{id}")
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	raw := resp.Body()
	if isJSONNull(raw) {
		return nil, ErrNotFound
	}
	if err := validateCourse(raw); err != nil {
		return nil, err
	}
	doc, err := decode[course.Course](raw)
	if err != nil {
		return nil, &InvalidDocumentError{Err: err}
	}
	return &doc, nil
}

// MarkSubtopicRead records subtopic (its original title) as read.
func (c *Client) MarkSubtopicRead(ctx context.Context, courseID, subtopic string) error {
	req, err := c.authorized(ctx)
	if err != nil {
		return err
	}
	resp, err := req.
		SetPathParam("id", courseID).
		SetBody(markReadBody{SubTopic: subtopic}).
		Put("/course-content/{id}/read")
	if err != nil {
		return fmt.Errorf("mark subtopic read: %w", err)
	}
	return checkStatus(resp, http.StatusOK)
}

// GenerateCourse submits a validated generation request.
func (c *Client) GenerateCourse(ctx context.Context, gr course.GenerateRequest) (*Generated, error) {
	gr.SubTopics = slices.Clone(gr.SubTopics)
	gr.Normalize()
	if err := gr.Validate(); err != nil {
		return nil, err
	}
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := req.SetBody(gr).Post("/generate-learning-content")
	if err != nil {
		return nil, fmt.Errorf("generate course: %w", err)
	}
	if err := checkStatus(resp, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return nil, err
	}
	var out Generated
	if !isJSONNull(resp.Body()) {
		// The body is informational only; an unexpected shape is not a failure.
		out, _ = decode[Generated](resp.Body())
	}
	return &out, nil
}

// checkStatus maps a response to nil when its status is one of ok.
func checkStatus(resp *resty.Response, ok ...int) error {
	status := resp.StatusCode()
	for _, s := range ok {
		if status == s {
			return nil
		}
	}

	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}

	se := &StatusError{Status: status}
	if body, err := decode[errorBody](resp.Body()); err == nil {
		se.Message = body.text()
	}
	return se
}
