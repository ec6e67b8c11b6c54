package ai

import (
	"strings"
	"testing"
)

func TestSanitizeDiff_Empty(t *testing.T) {
	if got := SanitizeDiff(""); got != "" {
		t.Errorf("SanitizeDiff(\"\") = %q, want empty", got)
	}
}

func TestSanitizeDiff_WrapsInOpaqueBlock(t *testing.T) {
	got := SanitizeDiff("+added line")
	if !strings.HasPrefix(got, "<DIFF>\n<![CDATA[\n") {
		t.Errorf("missing opening block: %q", got)
	}
	if !strings.HasSuffix(got, "\n]]>\n</DIFF>") {
		t.Errorf("missing closing block: %q", got)
	}
	if !strings.Contains(got, "+added line") {
		t.Error("diff content lost")
	}
}

func TestSanitizeDiff_NeutralizesFences(t *testing.T) {
	got := SanitizeDiff("```go\ncode\n```\n~~~\n")
	if strings.Contains(got, "```") {
		t.Error("backtick fence survived sanitization")
	}
	if strings.Contains(got, "~~~") {
		t.Error("tilde fence survived sanitization")
	}
}

func TestSanitizeDiff_StripsNULsAndNormalizesNewlines(t *testing.T) {
	got := SanitizeDiff("a\x00b\r\nc\rd")
	if strings.Contains(got, "\x00") {
		t.Error("NUL byte survived sanitization")
	}
	if strings.Contains(got, "\r") {
		t.Error("carriage return survived sanitization")
	}
	if !strings.Contains(got, "ab\nc\nd") {
		t.Errorf("unexpected normalization result: %q", got)
	}
}
