// Package hook models the prepare-commit-msg invocation and decides whether
// message generation should run at all.
package hook

import (
	"fmt"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
)

// Source identifies where the commit message would otherwise come from,
// mirroring the second positional argument git passes to prepare-commit-msg.
type Source string

const (
	// SourceNone means no message source: a plain `git commit`.
	SourceNone Source = ""
	// SourceMessage means the message was supplied with -m or -F.
	SourceMessage Source = "message"
	// SourceTemplate means a commit template is in effect.
	SourceTemplate Source = "template"
	// SourceMerge means a merge commit is in progress.
	SourceMerge Source = "merge"
	// SourceSquash means a squash commit is in progress.
	SourceSquash Source = "squash"
	// SourceCommit means an existing commit's message is being reused
	// (-c, -C, or --amend).
	SourceCommit Source = "commit"
)

// ParseSource maps the hook's source tag argument to a Source. Unrecognized
// tags return ok=false and must be treated as ineligible (fail closed).
func ParseSource(tag string) (Source, bool) {
	switch Source(tag) {
	case SourceNone, SourceMessage, SourceTemplate, SourceMerge, SourceSquash, SourceCommit:
		return Source(tag), true
	default:
		return SourceNone, false
	}
}

// InvocationContext captures one hook invocation. It is built once per run
// and never mutated.
type InvocationContext struct {
	// MessageFile is the path to the commit-message buffer.
	MessageFile string
	// Source is the message source tag git passed to the hook.
	Source Source
	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges bool
}

// Decision is the outcome of the eligibility check. Reason is for stderr
// diagnostics only.
type Decision struct {
	Generate bool
	Reason   string
}

func skip(format string, args ...interface{}) Decision {
	return Decision{Generate: false, Reason: fmt.Sprintf(format, args...)}
}

// ShouldGenerate decides whether generation should run for this invocation.
// It is a pure predicate over the invocation context and resolved config;
// it must run before any collection or network work.
func ShouldGenerate(inv InvocationContext, cfg *config.Config) Decision {
	if cfg == nil || !cfg.General.Enabled {
		return skip("generation disabled in config")
	}
	if config.DisabledByEnv() {
		return skip("disabled via %s", config.DisableEnvVar)
	}
	if inv.Source != SourceNone {
		return skip("message source %q supplies its own content", string(inv.Source))
	}
	if !inv.HasStagedChanges {
		return skip("no staged changes")
	}
	return Decision{Generate: true}
}
