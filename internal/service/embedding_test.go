package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbeddingClient_Generate(t *testing.T) {
	var gotAuth string
	var gotReq embeddingRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "sk-test", "text-embedding-3-small")

	embedding, err := c.Generate(context.Background(), "neon nights")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(embedding) != 3 || embedding[0] != 0.1 {
		t.Errorf("unexpected embedding: %v", embedding)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotReq.Model != "text-embedding-3-small" || gotReq.Input != "neon nights" || gotReq.EncodingFormat != "float" {
		t.Errorf("unexpected request body: %+v", gotReq)
	}
}

func TestEmbeddingClient_GenerateNoAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "", "text-embedding-3-small")

	if c.Configured() {
		t.Error("client without a key should not report configured")
	}
	if _, err := c.Generate(context.Background(), "x"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if called {
		t.Error("missing key must fail before any network call")
	}
}

func TestEmbeddingClient_GenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "sk-bad", "text-embedding-3-small")

	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmbeddingClient_GenerateEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c := NewEmbeddingClient(srv.URL, "sk-test", "text-embedding-3-small")

	if _, err := c.Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty data")
	}
}
