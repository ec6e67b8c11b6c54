package ai

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SanitizeDiff makes arbitrary diff text safe to embed in a prompt: NULs are
// stripped, newlines and unicode are normalized, code fences are neutralized
// so the model cannot mistake the diff for markup, and the result is wrapped
// in an opaque CDATA block.
func SanitizeDiff(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)

	// Swap fence characters for visually similar stand-ins.
	text = strings.ReplaceAll(text, "```", "ʼʼʼ")
	text = strings.ReplaceAll(text, "~~~", "∼∼∼")

	return "<DIFF>\n<![CDATA[\n" + text + "\n]]>\n</DIFF>"
}
