package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

func testRequest() *Request {
	return &Request{
		System:      DefaultSystemPrompt,
		User:        "Write ONLY a git commit message.",
		Model:       "qwen2.5-coder:7b",
		Temperature: 0.2,
		TopP:        1.0,
	}
}

func TestOllamaProvider_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != OllamaAPIPath {
			t.Errorf("path = %q, want %q", r.URL.Path, OllamaAPIPath)
		}

		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("Stream = true, want false")
		}
		if len(req.Messages) != 2 {
			t.Errorf("len(Messages) = %d, want 2", len(req.Messages))
		}

		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "  feat: add login validation\n"},
			Done:    true,
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	got, err := provider.Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "feat: add login validation" {
		t.Errorf("Generate() = %q, want trimmed message", got)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	if _, err := provider.Generate(context.Background(), testRequest()); err == nil {
		t.Error("Generate() error = nil on HTTP 500, want failure")
	}
}

func TestOllamaProvider_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	if _, err := provider.Generate(context.Background(), testRequest()); err == nil {
		t.Error("Generate() error = nil on malformed body, want failure")
	}
}

func TestOllamaProvider_EmptyMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Done: true})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	_, err := provider.Generate(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Generate() error = nil on empty message, want failure")
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrEmptyResponse {
		t.Errorf("error = %v, want ErrEmptyResponse", err)
	}
}

func TestOllamaProvider_APIErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaChatResponse{Error: "model not found"})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	if _, err := provider.Generate(context.Background(), testRequest()); err == nil {
		t.Error("Generate() error = nil on error field, want failure")
	}
}

func TestOllamaProvider_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	provider := NewOllamaProvider(server.URL)
	start := time.Now()
	_, err := provider.Generate(ctx, testRequest())
	if err == nil {
		t.Fatal("Generate() error = nil on timeout, want failure")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Generate() took %v; the call must be abandoned at the deadline", elapsed)
	}
}

func TestOllamaProvider_ConnectionRefused(t *testing.T) {
	// Point at a closed port.
	provider := NewOllamaProvider("http://127.0.0.1:1")
	if _, err := provider.Generate(context.Background(), testRequest()); err == nil {
		t.Error("Generate() error = nil on refused connection, want failure")
	}
}

func TestOllamaProvider_SingleCall(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL)
	provider.Generate(context.Background(), testRequest())

	if calls != 1 {
		t.Errorf("provider made %d calls, want exactly 1 (no retries)", calls)
	}
}
