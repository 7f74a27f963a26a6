package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/azizikri/edulearn/internal/contract"
	httphandler "github.com/azizikri/edulearn/internal/delivery/http"
	"github.com/azizikri/edulearn/internal/domain"
	"github.com/azizikri/edulearn/internal/repository"
	"github.com/azizikri/edulearn/internal/usecase"
	"github.com/go-chi/chi/v5"
)

func newRegistry() *contract.Registry {
	return contract.NewCatalogRegistry(usecase.NewCatalogService(repository.DefaultSnapshot()))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	httphandler.NewHandler(newRegistry()).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func callers(t *testing.T) map[string]Caller {
	srv := newTestServer(t)
	return map[string]Caller{
		"http":   NewHTTPCaller(srv.URL, srv.Client()),
		"direct": NewDirectCaller(newRegistry()),
	}
}

func TestClient_Queries(t *testing.T) {
	for name, caller := range callers(t) {
		t.Run(name, func(t *testing.T) {
			c := New(caller)
			ctx := context.Background()

			courses, err := c.GetCourses(ctx)
			if err != nil {
				t.Fatalf("GetCourses: %v", err)
			}
			if len(courses) != 4 {
				t.Fatalf("expected 4 courses, got %d", len(courses))
			}

			course, err := c.GetCourseByID(ctx, "1")
			if err != nil {
				t.Fatalf("GetCourseByID: %v", err)
			}
			if course.Title != "Machine Learning Specialization" {
				t.Fatalf("unexpected title %q", course.Title)
			}

			banners, err := c.GetBanners(ctx)
			if err != nil {
				t.Fatalf("GetBanners: %v", err)
			}
			if len(banners) != 3 {
				t.Fatalf("expected 3 banners, got %d", len(banners))
			}
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	for name, caller := range callers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := New(caller).GetCourseByID(context.Background(), "nonexistent")
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			var wireErr *contract.Error
			if !errors.As(err, &wireErr) || wireErr.Code != contract.CodeNotFound {
				t.Fatalf("expected typed NOT_FOUND error, got %v", err)
			}
		})
	}
}

func TestClient_Enroll(t *testing.T) {
	for name, caller := range callers(t) {
		t.Run(name, func(t *testing.T) {
			c := New(caller)

			ack, err := c.EnrollInCourse(context.Background(), domain.EnrollmentRequest{CourseID: "1", UserEmail: "a@b.com"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !ack.Success || ack.Message != "Successfully enrolled!" {
				t.Fatalf("unexpected ack %+v", ack)
			}

			_, err = c.EnrollInCourse(context.Background(), domain.EnrollmentRequest{CourseID: "1", UserEmail: "not-an-email"})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDirectCaller_KindMismatch(t *testing.T) {
	caller := NewDirectCaller(newRegistry())

	err := caller.Call(context.Background(), contract.Query, "enrollInCourse", domain.EnrollmentRequest{}, nil)
	var wireErr *contract.Error
	if !errors.As(err, &wireErr) || wireErr.Code != contract.CodeMethodNotSupported {
		t.Fatalf("expected METHOD_NOT_SUPPORTED, got %v", err)
	}
}

func TestHTTPCaller_MutationNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`))
	}))
	defer srv.Close()

	_, err := New(NewHTTPCaller(srv.URL, srv.Client())).EnrollInCourse(context.Background(),
		domain.EnrollmentRequest{CourseID: "1", UserEmail: "a@b.com"})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected mutation to be sent once, got %d", calls)
	}
}

func TestHTTPCaller_SendsRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("expected X-Request-Id header")
		}
		if r.Method != http.MethodGet || r.URL.Path != "/api/rpc/getBanners" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"result":[]}`))
	}))
	defer srv.Close()

	banners, err := New(NewHTTPCaller(srv.URL+"/", srv.Client())).GetBanners(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(banners) != 0 {
		t.Fatalf("expected empty banners, got %d", len(banners))
	}
}
