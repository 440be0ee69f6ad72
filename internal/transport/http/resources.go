package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sderosiaux/reservo-sub001/internal/app"
	"github.com/sderosiaux/reservo-sub001/internal/domain"
)

// ResourceService is the minimal interface needed by the resource endpoints.
type ResourceService interface {
	CreateResource(ctx context.Context, in app.CreateResourceInput) (domain.Resource, error)
	GetResource(ctx context.Context, id string) (domain.Resource, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)
	CloseResource(ctx context.Context, id string) (domain.Resource, error)
	OpenResource(ctx context.Context, id string) (domain.Resource, error)
}

// HandleResources returns an HTTP handler for resource creation and listing.
func HandleResources(svc ResourceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resources, err := svc.ListResources(r.Context())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			resp := make([]resourceResponse, 0, len(resources))
			for _, res := range resources {
				resp = append(resp, toResourceResponse(res))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		case http.MethodPost:
			var req createResourceRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			res, err := svc.CreateResource(r.Context(), app.CreateResourceInput{
				ID:       req.ID,
				Capacity: req.Capacity,
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toResourceResponse(res))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleResourceByID returns an HTTP handler for resource lookup and the
// close/open state flips.
func HandleResourceByID(svc ResourceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseResourcePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			res, err := svc.GetResource(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toResourceResponse(res))
			return
		case "close", "open":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var res domain.Resource
			var err error
			if action == "close" {
				res, err = svc.CloseResource(r.Context(), id)
			} else {
				res, err = svc.OpenResource(r.Context(), id)
			}
			if err != nil {
				writeServiceError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(toResourceResponse(res))
			return
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
	}
}

// parseResourcePath extracts the resource id and optional action from
// /resources/{id} or /resources/{id}/{action}.
func parseResourcePath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", false
	}
	if parts[0] != "resources" || parts[1] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		if parts[2] == "" {
			return "", "", false
		}
		return parts[1], parts[2], true
	}
	return parts[1], "", true
}

type createResourceRequest struct {
	ID       string `json:"id,omitempty"`
	Capacity int    `json:"capacity"`
}

type resourceResponse struct {
	ID        string `json:"id"`
	Capacity  int    `json:"capacity"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	State     string `json:"state"`
}

func toResourceResponse(res domain.Resource) resourceResponse {
	return resourceResponse{
		ID:        res.ID.String(),
		Capacity:  res.Capacity.Int(),
		Booked:    res.Booked,
		Remaining: res.RemainingCapacity(),
		State:     string(res.State),
	}
}
