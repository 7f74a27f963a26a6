package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/azizikri/edulearn/internal/contract"
	"github.com/azizikri/edulearn/internal/domain"
	"github.com/azizikri/edulearn/internal/repository"
	"github.com/azizikri/edulearn/internal/usecase"
	"github.com/go-chi/chi/v5"
)

func newTestRouter() http.Handler {
	registry := contract.NewCatalogRegistry(usecase.NewCatalogService(repository.DefaultSnapshot()))
	r := chi.NewRouter()
	NewHandler(registry).Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (int, contract.RawResponse) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp contract.RawResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not a JSON envelope: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, resp
}

func TestGetCourses(t *testing.T) {
	h := newTestRouter()

	code, resp := doRequest(t, h, http.MethodGet, "/api/rpc/getCourses", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var courses []domain.Course
	if err := json.Unmarshal(resp.Result, &courses); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(courses) != 4 || courses[0].ID != "1" || courses[3].ID != "4" {
		t.Fatalf("unexpected courses %+v", courses)
	}

	_, again := doRequest(t, h, http.MethodGet, "/api/rpc/getCourses", "")
	if string(again.Result) != string(resp.Result) {
		t.Fatal("expected consecutive getCourses calls to return equal results")
	}
}

func TestGetCourseByID(t *testing.T) {
	h := newTestRouter()

	target := "/api/rpc/getCourseById?input=" + url.QueryEscape(`{"id":"1"}`)
	code, resp := doRequest(t, h, http.MethodGet, target, "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var course domain.Course
	if err := json.Unmarshal(resp.Result, &course); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if course.Title != "Machine Learning Specialization" {
		t.Fatalf("unexpected title %q", course.Title)
	}
}

func TestGetCourseByID_PlainParams(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodGet, "/api/rpc/getCourseById?id=3", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var course domain.Course
	_ = json.Unmarshal(resp.Result, &course)
	if course.Title != "AI for Everyone" {
		t.Fatalf("unexpected title %q", course.Title)
	}
}

func TestGetCourseByID_NotFound(t *testing.T) {
	target := "/api/rpc/getCourseById?input=" + url.QueryEscape(`{"id":"nonexistent"}`)
	code, resp := doRequest(t, newTestRouter(), http.MethodGet, target, "")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != contract.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %+v", resp.Error)
	}
	if resp.Result != nil {
		t.Fatalf("expected no result alongside error, got %s", resp.Result)
	}
}

func TestGetBanners(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodGet, "/api/rpc/getBanners", "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	var banners []domain.Banner
	_ = json.Unmarshal(resp.Result, &banners)
	if len(banners) != 3 {
		t.Fatalf("expected 3 banners, got %d", len(banners))
	}
}

func TestEnrollInCourse(t *testing.T) {
	h := newTestRouter()
	body := `{"courseId":"1","userEmail":"a@b.com"}`

	for i := 0; i < 2; i++ {
		code, resp := doRequest(t, h, http.MethodPost, "/api/rpc/enrollInCourse", body)
		if code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i, code)
		}
		var ack domain.EnrollmentAck
		_ = json.Unmarshal(resp.Result, &ack)
		if !ack.Success || ack.Message != "Successfully enrolled!" {
			t.Fatalf("call %d: unexpected ack %+v", i, ack)
		}
	}
}

func TestEnrollInCourse_InvalidEmail(t *testing.T) {
	body := `{"courseId":"1","userEmail":"not-an-email"}`
	code, resp := doRequest(t, newTestRouter(), http.MethodPost, "/api/rpc/enrollInCourse", body)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != contract.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", resp.Error)
	}
}

func TestEnrollInCourse_MissingCourseID(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodPost, "/api/rpc/enrollInCourse", `{"userEmail":"a@b.com"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != contract.CodeValidation || resp.Error.Message != "courseId: required" {
		t.Fatalf("expected courseId to be required, got %+v", resp.Error)
	}
}

func TestGetCourseByID_MissingID(t *testing.T) {
	target := "/api/rpc/getCourseById?input=" + url.QueryEscape(`{}`)
	code, resp := doRequest(t, newTestRouter(), http.MethodGet, target, "")
	if code != http.StatusBadRequest || resp.Error == nil || resp.Error.Code != contract.CodeValidation {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d %+v", code, resp.Error)
	}
}

func TestEnrollInCourse_EmptyBody(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodPost, "/api/rpc/enrollInCourse", "")
	if code != http.StatusBadRequest || resp.Error.Code != contract.CodeValidation {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d %+v", code, resp.Error)
	}
}

func TestEnrollInCourse_MalformedBody(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodPost, "/api/rpc/enrollInCourse", "{not json")
	if code != http.StatusBadRequest || resp.Error.Code != contract.CodeInvalidRequest {
		t.Fatalf("expected 400 INVALID_REQUEST, got %d %+v", code, resp.Error)
	}
}

func TestKindMismatch(t *testing.T) {
	h := newTestRouter()

	code, resp := doRequest(t, h, http.MethodGet, "/api/rpc/enrollInCourse?courseId=1&userEmail=a@b.com", "")
	if code != http.StatusMethodNotAllowed || resp.Error.Code != contract.CodeMethodNotSupported {
		t.Fatalf("expected 405 for mutation via GET, got %d %+v", code, resp.Error)
	}

	code, resp = doRequest(t, h, http.MethodPost, "/api/rpc/getCourses", "{}")
	if code != http.StatusMethodNotAllowed || resp.Error.Code != contract.CodeMethodNotSupported {
		t.Fatalf("expected 405 for query via POST, got %d %+v", code, resp.Error)
	}
}

func TestUnknownOperation(t *testing.T) {
	code, resp := doRequest(t, newTestRouter(), http.MethodGet, "/api/rpc/deleteCourse", "")
	if code != http.StatusNotFound || resp.Error.Code != contract.CodeUnknownOperation {
		t.Fatalf("expected 404 UNKNOWN_OPERATION, got %d %+v", code, resp.Error)
	}
}

func TestEnvelope(t *testing.T) {
	h := newTestRouter()

	target := "/api/rpc?operation=getCourseById&input=" + url.QueryEscape(`{"id":"2"}`)
	code, resp := doRequest(t, h, http.MethodGet, target, "")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%+v)", code, resp.Error)
	}
	var course domain.Course
	_ = json.Unmarshal(resp.Result, &course)
	if course.ID != "2" {
		t.Fatalf("expected course 2, got %q", course.ID)
	}

	body := `{"operation":"enrollInCourse","input":{"courseId":"2","userEmail":"a@b.com"}}`
	code, resp = doRequest(t, h, http.MethodPost, "/api/rpc", body)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%+v)", code, resp.Error)
	}

	code, resp = doRequest(t, h, http.MethodGet, "/api/rpc", "")
	if code != http.StatusBadRequest || resp.Error.Code != contract.CodeInvalidRequest {
		t.Fatalf("expected 400 INVALID_REQUEST without operation, got %d %+v", code, resp.Error)
	}
}
