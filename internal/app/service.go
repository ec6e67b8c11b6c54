// Package app contains the pipeline orchestration for gitaimsg.
package app

import (
	"context"
	"time"

	"github.com/gitaimsg/gitaimsg/internal/pkg/ai"
	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
	"github.com/gitaimsg/gitaimsg/internal/pkg/git"
	"github.com/gitaimsg/gitaimsg/internal/pkg/hook"
	"github.com/gitaimsg/gitaimsg/internal/pkg/message"
)

// HookService runs the generation pipeline: eligibility guard, config
// resolution, change collection, prompt building, one provider call, and the
// buffer write. Every stage short-circuits on failure; callers on the hook
// path must treat any returned error as advisory and still exit 0.
type HookService struct {
	gitClient   git.Client
	loadConfig  func() (*config.Config, error)
	newProvider func(*config.Config) (ai.Provider, error)
	writeBuffer func(path, text string) error
}

// Option customizes a HookService, mainly for tests.
type Option func(*HookService)

// WithGitClient replaces the git client.
func WithGitClient(c git.Client) Option {
	return func(s *HookService) { s.gitClient = c }
}

// WithConfigLoader replaces the configuration loader.
func WithConfigLoader(load func() (*config.Config, error)) Option {
	return func(s *HookService) { s.loadConfig = load }
}

// WithProviderFactory replaces the provider dispatch.
func WithProviderFactory(f func(*config.Config) (ai.Provider, error)) Option {
	return func(s *HookService) { s.newProvider = f }
}

// WithBufferWriter replaces the commit-message buffer writer.
func WithBufferWriter(w func(path, text string) error) Option {
	return func(s *HookService) { s.writeBuffer = w }
}

// NewHookService creates a HookService with production dependencies.
func NewHookService(opts ...Option) *HookService {
	mgr := config.NewManager("", "")
	s := &HookService{
		gitClient:   git.NewClient(),
		loadConfig:  mgr.Load,
		newProvider: ai.NewProvider,
		writeBuffer: message.Write,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the hook pipeline for one invocation. A nil return means the
// pipeline either completed or skipped legitimately; a non-nil return is a
// diagnostic for stderr only. In both cases the commit proceeds.
func (s *HookService) Run(ctx context.Context, messageFile, sourceTag string) error {
	src, ok := hook.ParseSource(sourceTag)
	if !ok {
		apperrors.Debug("skip: unrecognized message source %q", sourceTag)
		return nil
	}

	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	inv := hook.InvocationContext{MessageFile: messageFile, Source: src}

	// The staged-changes probe is only worth a git call when every cheaper
	// guard condition already allows generation. The guard checks the cheap
	// conditions first, so a false probe result yields the right reason
	// either way.
	if cfg.General.Enabled && !config.DisabledByEnv() && src == hook.SourceNone {
		hasStaged, err := s.gitClient.HasStagedChanges(ctx)
		if err != nil {
			return err
		}
		inv.HasStagedChanges = hasStaged
	}

	decision := hook.ShouldGenerate(inv, cfg)
	if !decision.Generate {
		apperrors.Debug("skip: %s", decision.Reason)
		return nil
	}

	text, err := s.generate(ctx, cfg)
	if err != nil {
		return err
	}

	if err := s.writeBuffer(messageFile, text); err != nil {
		return err
	}

	apperrors.Debug("wrote %d bytes to %s", len(text), messageFile)
	return nil
}

// Generate runs collection, prompt building, and the provider call, and
// returns the draft message. Used by the interactive generate command, which
// unlike the hook is allowed to fail loudly.
func (s *HookService) Generate(ctx context.Context) (string, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return "", err
	}

	hasStaged, err := s.gitClient.HasStagedChanges(ctx)
	if err != nil {
		return "", err
	}
	if !hasStaged {
		return "", apperrors.NewNoStagedChangesError()
	}

	return s.generate(ctx, cfg)
}

// generate is the shared tail of the pipeline: collect, build, call.
func (s *HookService) generate(ctx context.Context, cfg *config.Config) (string, error) {
	changes, err := git.Collect(ctx, s.gitClient, cfg.General.MaxDiffChars)
	if err != nil {
		return "", err
	}
	apperrors.Debug("collected %d files, diff %d bytes (truncated=%v)",
		len(changes.Files), len(changes.Diff), changes.Truncated)

	req, err := ai.BuildRequest(changes, cfg)
	if err != nil {
		return "", err
	}

	provider, err := s.newProvider(cfg)
	if err != nil {
		return "", err
	}

	timeout := time.Duration(cfg.General.TimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := provider.Generate(callCtx, req)
	if err != nil {
		return "", err
	}
	return text, nil
}

// ShouldGenerate exposes the guard decision for a fully built invocation
// context, mainly for diagnostics from the CLI.
func (s *HookService) ShouldGenerate(inv hook.InvocationContext) (hook.Decision, error) {
	cfg, err := s.loadConfig()
	if err != nil {
		return hook.Decision{}, err
	}
	return hook.ShouldGenerate(inv, cfg), nil
}
