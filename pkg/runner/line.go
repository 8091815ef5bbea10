package runner

import (
	"strings"
	"unicode"
)

// ParseLine splits a command line into tokens.
//
// Tokens are separated by unquoted whitespace, line breaks included. A single- or
// double-quoted section belongs to the surrounding token and the quote characters are
// dropped, so `foo "bar baz" qux` yields [foo, bar baz, qux]. Inside double quotes a
// backslash escapes a following double quote or backslash; any other backslash is kept
// literally. Single-quoted sections are taken verbatim. An unterminated quote runs to
// the end of the line.
func ParseLine(line string) []string {
	var (
		tokens  []string
		current strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)

	for _, c := range line {
		switch {
		case escaped:
			if c != '"' && c != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(c)
			escaped = false
		case quote == '"' && c == '\\':
			escaped = true
		case quote != 0 && c == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(c)
		case c == '"' || c == '\'':
			quote = c
			inToken = true
		case unicode.IsSpace(c):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(c)
			inToken = true
		}
	}

	if escaped {
		current.WriteRune('\\')
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	return tokens
}
