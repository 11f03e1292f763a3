package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/neonpress/neonpress/internal/api"
	"github.com/neonpress/neonpress/internal/service"
)

func TestHealthLiveness(t *testing.T) {
	t.Parallel()

	h := api.NewHealthHandler(nil, nil, service.NewHealth(), testLogger(), "1.2.3", true, "text-embedding-3-small", 1024)

	r := newTestRouter()
	r.GET("/health", h.Liveness)

	w := doRequest(r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %v", resp["version"])
	}
	if resp["embeddings"] != "ok" {
		t.Errorf("expected embeddings ok, got %v", resp["embeddings"])
	}
	if resp["embedding_model"] != "text-embedding-3-small" {
		t.Errorf("unexpected model: %v", resp["embedding_model"])
	}
}

func TestHealthLiveness_DegradedStates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		setup   func(h *service.Health)
		want    string
	}{
		{"disabled without key", false, func(_ *service.Health) {}, "disabled"},
		{"provider down", true, func(h *service.Health) { h.MarkEmbeddingUnhealthy() }, "degraded_provider"},
		{"index down", true, func(h *service.Health) { h.MarkVectorUnhealthy() }, "degraded_index"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			health := service.NewHealth()
			tt.setup(health)

			h := api.NewHealthHandler(nil, nil, health, testLogger(), "dev", tt.enabled, "text-embedding-3-small", 1024)

			r := newTestRouter()
			r.GET("/health", h.Liveness)

			w := doRequest(r, http.MethodGet, "/health", "")

			var resp map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp["embeddings"] != tt.want {
				t.Errorf("expected embeddings %q, got %v", tt.want, resp["embeddings"])
			}
		})
	}
}
