package ai

import (
	"bytes"
	"text/template"

	"github.com/gitaimsg/gitaimsg/internal/pkg/config"
	"github.com/gitaimsg/gitaimsg/internal/pkg/git"
)

// DefaultSystemPrompt is used when the configuration provides none.
const DefaultSystemPrompt = "You are a senior developer writing concise Conventional Commit messages."

// userPromptTemplate renders the provider-agnostic user content. The diff
// arrives pre-sanitized and wrapped in an opaque block so models do not try
// to parse syntax inside it.
const userPromptTemplate = `Write ONLY a git commit message.

Constraints:
- First line MUST be: type(scope?): summary (max 72 chars). Types: feat|fix|chore|docs|refactor|test|build|style|perf
- Optionally 1-5 bullets on following lines.
- Do NOT include code fences, JSON, or explanations.

Branch:
{{.Branch}}

Files staged:
{{range .Files}}{{.}}
{{end}}
Changes (numstat):
{{.Numstat}}

Diff (opaque block; do not parse syntax inside):
{{.Diff}}
{{- if .Truncated}}
[diff truncated]
{{- end}}
`

var userPrompt = template.Must(template.New("userPrompt").Parse(userPromptTemplate))

// promptData is the template input for the user prompt.
type promptData struct {
	Branch    string
	Files     []string
	Numstat   string
	Diff      string
	Truncated bool
}

// BuildRequest deterministically combines the configured system prompt, the
// collected changes, and the sampling parameters into a single Request.
// Identical inputs always yield a byte-identical Request.
func BuildRequest(changes *git.ChangeSet, cfg *config.Config) (*Request, error) {
	data := promptData{
		Branch:    changes.Branch,
		Files:     changes.Files,
		Numstat:   changes.Numstat,
		Diff:      SanitizeDiff(changes.Diff),
		Truncated: changes.Truncated,
	}

	var buf bytes.Buffer
	if err := userPrompt.Execute(&buf, data); err != nil {
		return nil, err
	}

	system := cfg.General.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}

	return &Request{
		System:      system,
		User:        buf.String(),
		Model:       cfg.General.Model,
		Temperature: cfg.General.Temperature,
		TopP:        cfg.General.TopP,
	}, nil
}
