package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
)

const testToken = "test-token"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, TokenFunc(func() string { return testToken }), WithTimeout(5*time.Second))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

var rustBasicsJSON = map[string]any{
	"_id":                    "c-rust",
	"topic":                  "Rust Basics",
	"difficulty":             "beginner",
	"estimated_reading_time": 30,
	"sub_topics":             []string{"Ownership", "Borrowing"},
	"introduction": map[string]any{
		"introduction":        "...",
		"overview":            "...",
		"learning_objectives": []string{"a", "b"},
		"prerequisites":       []string{"c"},
	},
	"subtopic_contents": []map[string]any{
		{"subtopic": "Ownership", "content": "...", "sources": []string{}, "read": false},
		{"subtopic": "Borrowing", "content": "...", "sources": []string{}, "read": false},
	},
	"content_loaded": true,
}

func TestGetCourse_HappyPath(t *testing.T) {
	var gotPath, gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, rustBasicsJSON)
	})

	got, err := c.GetCourse(context.Background(), "c-rust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/course-content/c-rust" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer "+testToken {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("missing X-Request-ID")
	}
	if got.Topic != "Rust Basics" || len(got.SubtopicContents) != 2 || !got.ContentLoaded {
		t.Errorf("unexpected course: %+v", got)
	}
	if got.Introduction == nil || len(got.Introduction.LearningObjectives) != 2 {
		t.Errorf("unexpected introduction: %+v", got.Introduction)
	}
}

func TestGetCourse_PropagatesRequestID(t *testing.T) {
	var gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, rustBasicsJSON)
	})

	ctx := WithRequestID(context.Background(), "req-123")
	if _, err := c.GetCourse(ctx, "c-rust"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRequestID != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", gotRequestID)
	}
}

func TestGetCourse_Generating(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": "c1", "topic": "Go", "content_loaded": false, "introduction": nil,
		})
	})

	got, err := c.GetCourse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ContentLoaded {
		t.Error("expected content_loaded = false")
	}
}

func TestGetCourse_NullBodyIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "null")
	})

	_, err := c.GetCourse(context.Background(), "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetCourse_InvalidDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": "c1", "topic": "Go", "difficulty": "beginner", "content_loaded": true,
		})
	})

	_, err := c.GetCourse(context.Background(), "c1")
	var invalid *InvalidDocumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDocumentError, got %v", err)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{"404", http.StatusNotFound, map[string]string{"detail": "Not Found"}, func(t *testing.T, err error) {
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		}},
		{"401", http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"}, func(t *testing.T, err error) {
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		}},
		{"403", http.StatusForbidden, nil, func(t *testing.T, err error) {
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		}},
		{"500 detail", http.StatusInternalServerError, map[string]string{"detail": "boom"}, func(t *testing.T, err error) {
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if se.Status != 500 || se.Message != "boom" {
				t.Errorf("unexpected status error: %+v", se)
			}
		}},
		{"502 message", http.StatusBadGateway, map[string]string{"message": "upstream down"}, func(t *testing.T, err error) {
			if got := Message(err, "fallback"); got != "upstream down" {
				t.Errorf("Message = %q", got)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.GetCourse(context.Background(), "c1")
			tt.check(t, err)
		})
	}
}

func TestMissingTokenFailsWithoutRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	c := New(server.URL, TokenFunc(func() string { return "" }))
	if _, err := c.ListCourses(context.Background()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if called {
		t.Error("request should not reach the server")
	}
}

func TestMarkSubtopicRead(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	if err := c.MarkSubtopicRead(context.Background(), "c-rust", "Ownership"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s", gotMethod)
	}
	if gotPath != "/course-content/c-rust/read" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["sub_topic"] != "Ownership" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestMarkSubtopicRead_RejectsOtherSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.MarkSubtopicRead(context.Background(), "c1", "Ownership")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNoContent {
		t.Fatalf("expected StatusError 204, got %v", err)
	}
}

func TestListCourses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/course-content" {
			t.Errorf("path = %q", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "a", "topic": "Go", "difficulty": "advanced", "sub_topics": []string{"x"}, "content_loaded": true},
			{"_id": "b", "topic": "Rust", "difficulty": "beginner", "content_loaded": false},
		})
	})

	courses, err := c.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 2 || courses[0].Difficulty != course.Advanced || courses[1].ContentLoaded {
		t.Errorf("unexpected courses: %+v", courses)
	}
}

func TestGenerateCourse(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted} {
		var gotBody map[string]any
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/generate-learning-content" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			json.NewDecoder(r.Body).Decode(&gotBody)
			writeJSON(w, status, map[string]string{"_id": "new-course"})
		})

		out, err := c.GenerateCourse(context.Background(),
			course.NewGenerateRequest("  Rust  ", []string{" Ownership ", "Borrowing"}))
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
		if out.ID != "new-course" {
			t.Errorf("status %d: id = %q", status, out.ID)
		}
		if gotBody["topic"] != "Rust" || gotBody["difficulty"] != "beginner" || gotBody["language"] != "english" {
			t.Errorf("status %d: body = %v", status, gotBody)
		}
		subs, _ := gotBody["sub_topics"].([]any)
		if len(subs) != 2 || subs[0] != "Ownership" {
			t.Errorf("status %d: sub_topics = %v", status, subs)
		}
	}
}

func TestGenerateCourse_InvalidRequestNotSent(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	subs := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if _, err := c.GenerateCourse(context.Background(), course.NewGenerateRequest("Go", subs)); err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Error("invalid request should not reach the server")
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not send a bearer token")
		}
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "jwt", "token_type": "bearer"})
	})

	tok, err := c.Login(context.Background(), Credentials{Email: "a@b.co", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "jwt" {
		t.Errorf("access token = %q", tok.AccessToken)
	}

	_, err = c.Login(context.Background(), Credentials{Email: "a@b.co", Password: "wrong"})
	if got := Message(err, ""); got != "Invalid credentials" {
		t.Errorf("Message = %q, err = %v", got, err)
	}
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var reg Registration
		json.NewDecoder(r.Body).Decode(&reg)
		if reg.Email == "taken@b.co" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"email": reg.Email, "name": reg.Name})
	})

	acct, err := c.Register(context.Background(), Registration{Email: "new@b.co", Name: "Ada", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.Name != "Ada" {
		t.Errorf("name = %q", acct.Name)
	}

	_, err = c.Register(context.Background(), Registration{Email: "taken@b.co", Name: "Ada", Password: "pw"})
	if got := Message(err, ""); got != "Email already registered" {
		t.Errorf("Message = %q", got)
	}
}

func TestValidationDetailList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "email"}, "msg": "value is not a valid email address"}},
		})
	})

	_, err := c.Register(context.Background(), Registration{Email: "x", Name: "Ada", Password: "pw"})
	if got := Message(err, ""); got != "value is not a valid email address" {
		t.Errorf("Message = %q", got)
	}
}
