// Package literal turns multi-line text into line-exact Go string literals.
//
// Every line has its trailing whitespace stripped and a single "\n"
// reattached, including the last one, so text that does not end in a newline
// gains exactly one.
package literal

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lines splits text at line boundaries. A terminator at the very end does not
// produce a trailing empty line, and empty text yields no lines.
func Lines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// NormalizedLines returns the lines of text, each right-trimmed and
// terminated with "\n".
func NormalizedLines(text string) []string {
	lines := Lines(text)
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace) + "\n"
	}
	return lines
}

// Normalize returns the text that the literal tokens of text reconstruct.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	return strings.Join(NormalizedLines(text), "")
}

// Tokens returns one quoted Go string literal per normalized line.
func Tokens(text string) []string {
	lines := NormalizedLines(text)
	tokens := make([]string, len(lines))
	for i, line := range lines {
		tokens[i] = strconv.Quote(line)
	}
	return tokens
}

// Expr joins tokens into a Go string expression. Continuation lines are
// prefixed with indent. No tokens render as the empty string literal.
func Expr(tokens []string, indent string) string {
	if len(tokens) == 0 {
		return `""`
	}
	return strings.Join(tokens, " +\n"+indent)
}

// Unquote reverses Tokens, concatenating the tokens back into text.
func Unquote(tokens []string) (string, error) {
	var b strings.Builder
	for _, tok := range tokens {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}
