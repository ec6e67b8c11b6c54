// Package errors provides error types and stderr diagnostics for gitaimsg.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents the category of an error.
type ErrorCode int

const (
	// Configuration errors
	ErrInvalidConfig ErrorCode = iota + 100
	ErrUnknownProvider
	ErrMissingAPIKey

	// Repository errors
	ErrGitCommandFailed ErrorCode = iota + 200
	ErrNoStagedChanges

	// Provider errors
	ErrProviderFailed ErrorCode = iota + 300
	ErrNetworkError
	ErrTimeout
	ErrEmptyResponse

	// Output errors
	ErrBufferWrite ErrorCode = iota + 400
)

// String returns a human-readable name for the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrUnknownProvider:
		return "UnknownProvider"
	case ErrMissingAPIKey:
		return "MissingAPIKey"
	case ErrGitCommandFailed:
		return "GitCommandFailed"
	case ErrNoStagedChanges:
		return "NoStagedChanges"
	case ErrProviderFailed:
		return "ProviderFailed"
	case ErrNetworkError:
		return "NetworkError"
	case ErrTimeout:
		return "Timeout"
	case ErrEmptyResponse:
		return "EmptyResponse"
	case ErrBufferWrite:
		return "BufferWrite"
	default:
		return "Unknown"
	}
}

// AppError represents an application error with context.
// Inside the hook pipeline every AppError is advisory: it is logged to
// stderr and converted into "skip generation", never surfaced to git.
type AppError struct {
	Code       ErrorCode
	Message    string
	Cause      error
	Suggestion string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion to the error.
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AppError with the given code and message.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// NewGitError creates an error for a failed git command.
func NewGitError(err error, stderr string) *AppError {
	message := "git command failed"
	if stderr != "" {
		message = fmt.Sprintf("git command failed: %s", stderr)
	}
	return &AppError{Code: ErrGitCommandFailed, Message: message, Cause: err}
}

// NewNoStagedChangesError creates an error for an empty index.
func NewNoStagedChangesError() *AppError {
	return &AppError{
		Code:       ErrNoStagedChanges,
		Message:    "no staged changes found",
		Suggestion: "Use 'git add' to stage changes first",
	}
}

// NewTimeoutError creates an error for an operation that exceeded its deadline.
func NewTimeoutError(err error) *AppError {
	return &AppError{Code: ErrTimeout, Message: "operation timed out", Cause: err}
}

// NewNetworkError creates an error for a failed network operation.
func NewNetworkError(err error) *AppError {
	return &AppError{Code: ErrNetworkError, Message: "network error", Cause: err}
}

// NewProviderError creates an error for a failed provider call.
func NewProviderError(provider string, err error) *AppError {
	return &AppError{
		Code:    ErrProviderFailed,
		Message: fmt.Sprintf("%s provider failed", provider),
		Cause:   err,
	}
}

// NewMissingAPIKeyError creates an error for an unset API key variable.
func NewMissingAPIKeyError(provider, envVar string) *AppError {
	return &AppError{
		Code:       ErrMissingAPIKey,
		Message:    fmt.Sprintf("API key for %s is not set", provider),
		Suggestion: fmt.Sprintf("Export %s or configure api_key_env", envVar),
	}
}

// NewUnknownProviderError creates an error for an unrecognized provider name.
func NewUnknownProviderError(name string) *AppError {
	return &AppError{
		Code:       ErrUnknownProvider,
		Message:    fmt.Sprintf("unknown provider: %s", name),
		Suggestion: "Valid providers are: ollama, openai, gemini",
	}
}

// NewBufferWriteError creates an error for an unwritable commit-message buffer.
func NewBufferWriteError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrBufferWrite,
		Message: fmt.Sprintf("cannot write commit message buffer %s", path),
		Cause:   err,
	}
}

// LogAPIRequest logs an outgoing provider request in verbose mode.
func LogAPIRequest(provider, endpoint, model string, promptLen int) {
	Debug("API request: provider=%s endpoint=%s model=%s prompt_len=%d",
		provider, endpoint, model, promptLen)
}

// LogAPIResponse logs a provider response in verbose mode.
func LogAPIResponse(provider string, statusCode, responseLen int, duration time.Duration) {
	Debug("API response: provider=%s status=%d response_len=%d duration=%v",
		provider, statusCode, responseLen, duration)
}
