package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

// OpenAIProvider talks to the OpenAI chat-completion API, or any
// OpenAI-compatible endpoint selected via base_url.
type OpenAIProvider struct {
	client  *openai.Client
	baseURL string
}

// NewOpenAIProvider creates an OpenAI provider. The API key must already be
// resolved from the configured environment variable; a missing key fails
// before any network work.
func NewOpenAIProvider(settings config.ProviderSettings) (*OpenAIProvider, error) {
	if settings.APIKey == "" {
		return nil, apperrors.NewMissingAPIKeyError(config.ProviderOpenAI, settings.APIKeyEnv)
	}

	clientConfig := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(settings.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		baseURL: clientConfig.BaseURL,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return config.ProviderOpenAI
}

// Generate sends one chat completion request and returns the trimmed
// response text.
func (p *OpenAIProvider) Generate(ctx context.Context, req *Request) (string, error) {
	if req == nil {
		return "", errors.New("request cannot be nil")
	}

	chatReq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   MaxOutputTokens,
	}

	apperrors.LogAPIRequest(p.Name(), p.baseURL, req.Model, len(req.User))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.ErrEmptyResponse, "openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	apperrors.LogAPIResponse(p.Name(), http.StatusOK, len(text), time.Since(startTime))
	if text == "" {
		return "", apperrors.New(apperrors.ErrEmptyResponse, "openai returned an empty message")
	}
	return text, nil
}

// wrapOpenAIError maps client errors onto the pipeline taxonomy.
func wrapOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return apperrors.Wrap(err, apperrors.ErrProviderFailed, "openai authentication failed")
		}
		return apperrors.NewProviderError(config.ProviderOpenAI, err)
	}

	return apperrors.NewNetworkError(err)
}
