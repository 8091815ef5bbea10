package runner

import (
	"slices"
	"strings"
)

// ArgList is the argument accumulator shared by every Runner implementation.
// It only grows; tokens are never reordered or deduplicated.
type ArgList struct {
	args []string
}

// Arg trims val and appends it unless the result is empty.
func (l *ArgList) Arg(val string) {
	val = strings.TrimSpace(val)
	if val == "" {
		return
	}
	l.args = append(l.args, val)
}

// Args appends vals unmodified.
func (l *ArgList) Args(vals ...string) {
	if len(vals) == 0 {
		return
	}
	l.args = append(l.args, vals...)
}

// Line appends the tokens of a quote-aware command line.
func (l *ArgList) Line(val string) {
	if val == "" {
		return
	}
	l.args = append(l.args, ParseLine(val)...)
}

// ArgIf appends val when cond is non-nil, without calling it.
func (l *ArgList) ArgIf(cond func() bool, val string) {
	if cond != nil {
		l.Arg(val)
	}
}

// ArgWhen appends val when cond is non-nil and returns true.
func (l *ArgList) ArgWhen(cond func() bool, val string) {
	if cond != nil && cond() {
		l.Arg(val)
	}
}

// Reset empties the list in place.
func (l *ArgList) Reset() {
	l.args = nil
}

// Len returns the number of accumulated tokens.
func (l *ArgList) Len() int {
	return len(l.args)
}

// Slice returns a copy of the accumulated tokens. It never returns nil.
func (l *ArgList) Slice() []string {
	if l.args == nil {
		return []string{}
	}
	return slices.Clone(l.args)
}

// String renders the list as a single space separated line.
func (l *ArgList) String() string {
	return strings.Join(l.args, " ")
}
