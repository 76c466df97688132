package model

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/trendora/recommendation-service/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func embedHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "all-MiniLM-L6-v2" {
			t.Errorf("expected configured model name, got %q", req.Model)
		}

		// Answer out of order on purpose; the client must reorder by index.
		resp := embeddingResponse{}
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, struct {
				Index     int       `json:"index"`
				Embedding []float64 `json:"embedding"`
			}{Index: i, Embedding: []float64{float64(i), 1, 0}})
		}
		writeResp(w, resp)
	}
}

func writeResp(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestEmbed(t *testing.T) {
	srv := newTestServer(t, embedHandler(t))
	client := NewClient(srv.URL, "all-MiniLM-L6-v2")

	vectors, err := client.Embed(context.Background(), []string{"red shoe", "blue hat", "green sock"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if v[0] != float64(i) {
			t.Errorf("vector %d not reordered by index: %v", i, v)
		}
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	client := NewClient("http://unused", "m")
	vectors, err := client.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if vectors != nil {
		t.Errorf("expected nil for no input, got %v", vectors)
	}
}

func TestEmbedServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	})
	client := NewClient(srv.URL, "m")

	_, err := client.Embed(context.Background(), []string{"x"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestEmbedTransportError(t *testing.T) {
	// Nothing listens here.
	client := NewClient("http://127.0.0.1:1", "m")

	_, err := client.Embed(context.Background(), []string{"x"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestEmbedVectorCountMismatch(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeResp(w, embeddingResponse{Data: []struct {
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}{{Index: 0, Embedding: []float64{1}}}})
	})
	client := NewClient(srv.URL, "m")

	_, err := client.Embed(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestEmbedConcurrent(t *testing.T) {
	// The client is shared process-wide; concurrent Embed calls from
	// simultaneous requests must be safe.
	srv := newTestServer(t, embedHandler(t))
	client := NewClient(srv.URL, "all-MiniLM-L6-v2")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vectors, err := client.Embed(context.Background(), []string{"a", "b"})
			if err != nil {
				errs <- err
				return
			}
			if len(vectors) != 2 {
				errs <- errors.New("wrong vector count")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Embed: %v", err)
	}
}
