package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/queueless/queueless-api/internal/model"
)

func newTestClient(serverURL string) *GeminiClient {
	c := NewGeminiClient("test-key")
	c.baseURL = serverURL
	return c
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in request")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"output":"Expect a short wait."}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.GenerateText(context.Background(), "explain the wait")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "Expect a short wait." {
		t.Errorf("GenerateText = %q", text)
	}
}

func TestGenerateTextRateLimited(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, model.ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	// Quota failures are not retried
	if calls != 1 {
		t.Errorf("server called %d times, want 1", calls)
	}
}

func TestGenerateTextUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestGenerateTextRetriesTransientFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"output":"Recovered."}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	text, err := c.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "Recovered." {
		t.Errorf("GenerateText = %q", text)
	}
	if calls != 2 {
		t.Errorf("server called %d times, want 2", calls)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	_, err := c.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, model.ErrInvalidResponse) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}
