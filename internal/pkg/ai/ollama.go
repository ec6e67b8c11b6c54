package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

const (
	// OllamaAPIPath is the chat completion path on the local server.
	OllamaAPIPath = "/api/chat"
)

// OllamaProvider talks to a local Ollama server over HTTP. No API key is
// required.
type OllamaProvider struct {
	httpClient *http.Client
	baseURL    string
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// NewOllamaProvider creates an Ollama provider for the given base URL.
func NewOllamaProvider(baseURL string) *OllamaProvider {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &OllamaProvider{
		// The request deadline comes from the caller's context; no client
		// timeout on top of it.
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the provider name.
func (p *OllamaProvider) Name() string {
	return config.ProviderOllama
}

// Generate sends one chat request to the local server and returns the
// trimmed response text.
func (p *OllamaProvider) Generate(ctx context.Context, req *Request) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	chatReq := ollamaChatRequest{
		Model: req.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Stream: false,
		Options: &ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  MaxOutputTokens,
		},
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + OllamaAPIPath
	apperrors.LogAPIRequest(p.Name(), url, req.Model, len(req.User))
	startTime := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", apperrors.NewTimeoutError(err)
		}
		return "", apperrors.NewNetworkError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", apperrors.NewNetworkError(err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", apperrors.NewProviderError(p.Name(),
			fmt.Errorf("unexpected status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(respBody))))
	}

	var resp ollamaChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", apperrors.NewProviderError(p.Name(), fmt.Errorf("malformed response: %w", err))
	}
	if resp.Error != "" {
		return "", apperrors.NewProviderError(p.Name(), errors.New(resp.Error))
	}

	text := strings.TrimSpace(resp.Message.Content)
	apperrors.LogAPIResponse(p.Name(), httpResp.StatusCode, len(text), time.Since(startTime))
	if text == "" {
		return "", apperrors.New(apperrors.ErrEmptyResponse, "ollama returned an empty message")
	}
	return text, nil
}
