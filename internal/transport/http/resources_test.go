package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sderosiaux/reservo-sub001/internal/app"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

type stubResourceService struct {
	resource  domain.Resource
	resources []domain.Resource
	err       error

	lastAction string
}

func (s *stubResourceService) CreateResource(_ context.Context, _ app.CreateResourceInput) (domain.Resource, error) {
	s.lastAction = "create"
	return s.resource, s.err
}

func (s *stubResourceService) GetResource(_ context.Context, _ string) (domain.Resource, error) {
	s.lastAction = "get"
	return s.resource, s.err
}

func (s *stubResourceService) ListResources(_ context.Context) ([]domain.Resource, error) {
	s.lastAction = "list"
	return s.resources, s.err
}

func (s *stubResourceService) CloseResource(_ context.Context, _ string) (domain.Resource, error) {
	s.lastAction = "close"
	return s.resource, s.err
}

func (s *stubResourceService) OpenResource(_ context.Context, _ string) (domain.Resource, error) {
	s.lastAction = "open"
	return s.resource, s.err
}

func testResource() domain.Resource {
	return domain.Resource{
		ID:       domain.ResourceID("room-1"),
		Capacity: domain.Quantity(10),
		Booked:   4,
		State:    domain.ResourceStateOpen,
	}
}

func TestHandleResources_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"id":"room-1","capacity":10}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id":"room-1"`,
		},
		{
			name:           "invalid json",
			body:           `{"id":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "validation failure",
			body:           `{"id":"bad id!","capacity":10}`,
			serviceErr:     &domain.ValidationError{Field: "resource id", Rule: "must match [A-Za-z0-9_.-]{1,64}"},
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeValidationFailed,
		},
		{
			name:           "already exists",
			body:           `{"id":"room-1","capacity":10}`,
			serviceErr:     domain.ErrResourceExists,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeResourceExists,
		},
		{
			name:           "internal error",
			body:           `{"id":"room-1","capacity":10}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: codeInternalError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubResourceService{resource: testResource(), err: tt.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/resources", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			HandleResources(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleResources_List(t *testing.T) {
	t.Parallel()

	svc := &stubResourceService{resources: []domain.Resource{testResource()}}
	req := httptest.NewRequest(http.MethodGet, "/resources", nil)
	rec := httptest.NewRecorder()

	HandleResources(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"remaining":6`) {
		t.Fatalf("expected remaining capacity in response, got %q", rec.Body.String())
	}
}

func TestHandleResources_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodDelete, "/resources", nil)
	rec := httptest.NewRecorder()

	HandleResources(&stubResourceService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHandleResourceByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		serviceErr     error
		expectedStatus int
		expectedAction string
	}{
		{
			name:           "get success",
			method:         http.MethodGet,
			path:           "/resources/room-1",
			expectedStatus: http.StatusOK,
			expectedAction: "get",
		},
		{
			name:           "get not found",
			method:         http.MethodGet,
			path:           "/resources/missing",
			serviceErr:     domain.ErrResourceNotFound,
			expectedStatus: http.StatusNotFound,
			expectedAction: "get",
		},
		{
			name:           "close",
			method:         http.MethodPost,
			path:           "/resources/room-1/close",
			expectedStatus: http.StatusOK,
			expectedAction: "close",
		},
		{
			name:           "open",
			method:         http.MethodPost,
			path:           "/resources/room-1/open",
			expectedStatus: http.StatusOK,
			expectedAction: "open",
		},
		{
			name:           "close with GET",
			method:         http.MethodGet,
			path:           "/resources/room-1/close",
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "unknown action",
			method:         http.MethodPost,
			path:           "/resources/room-1/destroy",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "maintenance",
			method:         http.MethodPost,
			path:           "/resources/room-1/close",
			serviceErr:     &app.MaintenanceError{Message: "back soon"},
			expectedStatus: http.StatusServiceUnavailable,
			expectedAction: "close",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubResourceService{resource: testResource(), err: tt.serviceErr}
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			HandleResourceByID(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedAction != "" && svc.lastAction != tt.expectedAction {
				t.Fatalf("expected service action %q, got %q", tt.expectedAction, svc.lastAction)
			}
		})
	}
}

func TestParseResourcePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		id     string
		action string
		ok     bool
	}{
		{"/resources/room-1", "room-1", "", true},
		{"/resources/room-1/close", "room-1", "close", true},
		{"/resources/", "", "", false},
		{"/resources/room-1/close/extra", "", "", false},
		{"/other/room-1", "", "", false},
	}
	for _, tt := range tests {
		id, action, ok := parseResourcePath(tt.path)
		if id != tt.id || action != tt.action || ok != tt.ok {
			t.Fatalf("parseResourcePath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.path, id, action, ok, tt.id, tt.action, tt.ok)
		}
	}
}
