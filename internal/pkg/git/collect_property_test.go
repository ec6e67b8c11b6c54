package git

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTruncateDiff_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("result never exceeds the budget", prop.ForAll(
		func(diff string, maxChars int) bool {
			got, _ := TruncateDiff(diff, maxChars)
			return len(got) <= maxChars
		},
		gen.AnyString(),
		gen.IntRange(1, 200),
	))

	properties.Property("result is always a prefix of the input", prop.ForAll(
		func(diff string, maxChars int) bool {
			got, _ := TruncateDiff(diff, maxChars)
			return strings.HasPrefix(diff, got)
		},
		gen.AnyString(),
		gen.IntRange(1, 200),
	))

	properties.Property("truncated flag set iff input exceeds budget", prop.ForAll(
		func(diff string, maxChars int) bool {
			_, truncated := TruncateDiff(diff, maxChars)
			return truncated == (len(diff) > maxChars)
		},
		gen.AnyString(),
		gen.IntRange(1, 200),
	))

	properties.Property("result is valid UTF-8 for valid input", prop.ForAll(
		func(diff string, maxChars int) bool {
			got, _ := TruncateDiff(diff, maxChars)
			return utf8.ValidString(got)
		},
		gen.AnyString(),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}
