// Package diff renders differences between argument lists.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Equal reports whether two argument lists hold the same tokens in the same order.
func Equal(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// Args renders a token-per-line diff of want against got.
// Lines only in want are prefixed with "-", lines only in got with "+", and shared
// lines with a space. Equal lists render as an empty string.
func Args(want, got []string) string {
	if Equal(want, got) {
		return ""
	}

	dmp := diffmatchpatch.New()
	wantText, gotText, lines := dmp.DiffLinesToChars(joinLines(want), joinLines(got))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(wantText, gotText, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(" ")
			sb.WriteString(line)
		}
	}
	return sb.String()
}

func joinLines(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, "\n") + "\n"
}
