package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trendora/recommendation-service/internal/domain"
)

const requestTimeout = 30 * time.Second

// Client talks to an OpenAI-compatible /v1/embeddings endpoint serving a
// pre-trained sentence-embedding model. The model identity comes from
// configuration, not code. The client holds no mutable state after
// construction, so concurrent Embed calls from simultaneous requests are
// safe.
type Client struct {
	baseURL string
	model   string
	httpc   *http.Client
}

func NewClient(baseURL, model string) *Client {
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed encodes texts into dense vectors, one per input, in input order. Any
// transport or server failure surfaces as an error wrapping
// domain.ErrModelUnavailable so callers can treat it as a request-scoped
// model outage.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embeddingRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %v: %w", err, domain.ErrModelUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding endpoint returned %d: %s: %w",
			resp.StatusCode, snippet, domain.ErrModelUnavailable)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %v: %w", err, domain.ErrModelUnavailable)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embedding endpoint returned %d vectors for %d inputs: %w",
			len(parsed.Data), len(texts), domain.ErrModelUnavailable)
	}

	// The endpoint reports an index per vector; order by it rather than
	// trusting response order.
	vectors := make([][]float64, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range: %w", d.Index, domain.ErrModelUnavailable)
		}
		vectors[d.Index] = d.Embedding
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) == 0 || len(v) != dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, want %d: %w",
				i, len(v), dim, domain.ErrModelUnavailable)
		}
	}
	return vectors, nil
}
