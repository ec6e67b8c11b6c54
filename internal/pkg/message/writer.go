// Package message writes generated text into the commit-message buffer.
package message

import (
	"os"
	"strings"

	apperrors "github.com/gitaimsg/gitaimsg/internal/pkg/errors"
)

// Write overwrites the commit-message buffer at path with text. The buffer's
// prior content is not preserved; this path is only reached when no other
// message source produced content worth keeping. Empty text is refused so a
// failed generation can never blank the buffer.
func Write(path, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.New(apperrors.ErrEmptyResponse, "refusing to write empty commit message")
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return apperrors.NewBufferWriteError(path, err)
	}
	return nil
}
