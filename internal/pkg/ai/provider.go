// Package ai builds generation requests and sends them to one of the
// interchangeable provider backends.
package ai

import "context"

// Request is a provider-agnostic generation request: instruction text plus
// sampling parameters. It is constructed once per invocation and consumed by
// exactly one provider call.
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float32
	TopP        float32
}

// Provider is the capability shared by all backends: generate text for a
// request within the caller's context deadline. Implementations make exactly
// one round trip; no retries, since a second attempt would risk exceeding the
// commit hook's acceptable latency. Any failure (network, status, malformed
// body, missing credentials, timeout) is reported as an error and the caller
// treats it as "skip generation".
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (string, error)
}

// MaxOutputTokens caps the response size across all backends. Commit
// messages are short; a tight cap also keeps latency down.
const MaxOutputTokens = 300
