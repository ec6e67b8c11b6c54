package git

import (
	"context"
	"unicode/utf8"
)

// ChangeSet is a read-only snapshot of the staged changes at invocation time.
// It is derived fresh per run and never persisted.
type ChangeSet struct {
	Branch    string
	Files     []string
	Numstat   string
	Diff      string
	Truncated bool
}

// Collect gathers the staged file list and unified diff, truncating the diff
// to maxDiffChars. Truncation is not an error; partial context is acceptable
// model input. Any git failure propagates so the pipeline can skip generation.
func Collect(ctx context.Context, c Client, maxDiffChars int) (*ChangeSet, error) {
	branch, err := c.CurrentBranch(ctx)
	if err != nil {
		// Branch name is advisory context only.
		branch = "HEAD"
	}

	files, err := c.StagedFiles(ctx)
	if err != nil {
		return nil, err
	}

	numstat, err := c.Numstat(ctx)
	if err != nil {
		return nil, err
	}

	diff, err := c.StagedDiff(ctx)
	if err != nil {
		return nil, err
	}

	diff, truncated := TruncateDiff(diff, maxDiffChars)

	return &ChangeSet{
		Branch:    branch,
		Files:     files,
		Numstat:   numstat,
		Diff:      diff,
		Truncated: truncated,
	}, nil
}

// TruncateDiff clamps diff to a budget of maxChars bytes. The cut backs off
// to the nearest rune boundary so the result is always valid UTF-8; no
// ellipsis is inserted, keeping the kept prefix character-exact. A budget of
// zero or less means unlimited.
func TruncateDiff(diff string, maxChars int) (string, bool) {
	if maxChars <= 0 || len(diff) <= maxChars {
		return diff, false
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut], true
}
