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

// GeminiProvider talks to the Google Generative Language API.
type GeminiProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type geminiRequest struct {
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	Contents         []geminiContent        `json:"contents"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiProvider creates a Gemini provider. A missing API key fails
// before any network work.
func NewGeminiProvider(settings config.ProviderSettings) (*GeminiProvider, error) {
	if settings.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError(config.ProviderGemini, settings.APIKeyEnv)
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &GeminiProvider{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		apiKey:     settings.APIKey,
	}, nil
}

// Name returns the provider name.
func (p *GeminiProvider) Name() string {
	return config.ProviderGemini
}

// Generate sends one generateContent request and returns the trimmed,
// concatenated candidate text. Gemini has no separate system role at this
// API level, so system and user content go into a single user part.
func (p *GeminiProvider) Generate(ctx context.Context, req *Request) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	payload := geminiRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Temperature,
			TopP:            req.TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: req.System + "\n\n" + req.User}},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, req.Model)
	apperrors.LogAPIRequest(p.Name(), url, req.Model, len(req.User))
	startTime := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", p.apiKey)

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

	var resp geminiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", apperrors.NewProviderError(p.Name(), fmt.Errorf("malformed response: %w", err))
	}
	if resp.Error != nil {
		return "", apperrors.NewProviderError(p.Name(),
			fmt.Errorf("API error %d: %s", resp.Error.Code, resp.Error.Message))
	}
	if len(resp.Candidates) == 0 {
		return "", apperrors.New(apperrors.ErrEmptyResponse, "gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	apperrors.LogAPIResponse(p.Name(), httpResp.StatusCode, len(text), time.Since(startTime))
	if text == "" {
		return "", apperrors.New(apperrors.ErrEmptyResponse, "gemini returned empty candidate text")
	}
	return text, nil
}
