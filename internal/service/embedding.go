// Package service provides business logic for the neonpress catalog.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/neonpress/neonpress/internal/metrics"
)

const embeddingTimeout = 30 * time.Second

// ErrNoAPIKey is returned when embedding is requested without a configured
// API key. It fails locally, before any network call, and is treated the
// same as a transport failure for degradation purposes.
var ErrNoAPIKey = errors.New("embedding API key is not configured")

// EmbeddingClient generates vector embeddings via an OpenAI-compatible API.
// It performs exactly one outbound call per invocation: no caching and no
// retries. Retry policy belongs to callers, and in this design there is
// none — a failure permanently degrades the semantic path (see Health).
type EmbeddingClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	// Some OpenAI-compatible providers require the format to be explicit.
	EncodingFormat string `json:"encoding_format"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// NewEmbeddingClient creates an EmbeddingClient for the given endpoint and
// model. An empty apiKey is allowed; Generate then fails without a network
// call.
func NewEmbeddingClient(baseURL, apiKey, model string) *EmbeddingClient {
	return &EmbeddingClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: embeddingTimeout},
	}
}

// Configured reports whether an API key is present at all.
func (c *EmbeddingClient) Configured() bool {
	return c.apiKey != ""
}

// Generate produces a vector embedding for the given text.
func (c *EmbeddingClient) Generate(ctx context.Context, text string) ([]float32, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	metrics.EmbeddingRequests.Inc()

	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: text, EncodingFormat: "float"})
	if err != nil {
		return nil, fmt.Errorf("marshaling embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Capture a bounded slice of the body for the error message.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10)) //nolint:errcheck // best-effort read for diagnostics.
		return nil, fmt.Errorf("embeddings API returned status %d: %s", resp.StatusCode, msg)
	}

	var result embeddingResponse

	limited := io.LimitReader(resp.Body, 10<<20) // 10 MB
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}

	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embeddings API response missing embedding vector")
	}

	return result.Data[0].Embedding, nil
}
