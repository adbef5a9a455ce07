// Package search turns free-text user input into full-text query strings.
package search

import (
	"strings"
	"unicode"
)

// operatorChars are characters with meaning in the tsquery syntax.
const operatorChars = "\"':&|!()<>*\\"

// Tokens strips query-syntax characters, collapses whitespace and returns the
// remaining words. Words without a letter or digit are dropped. The result is
// empty when nothing searchable is left.
func Tokens(q string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(operatorChars, r) {
			return ' '
		}
		return r
	}, q)
	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if strings.IndexFunc(f, isWordRune) >= 0 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Sanitize returns the to_tsquery expression for q: every token required,
// the last token matched as a prefix. An empty string means no query.
func Sanitize(q string) string {
	tokens := Tokens(q)
	if len(tokens) == 0 {
		return ""
	}
	tokens[len(tokens)-1] += ":*"
	return strings.Join(tokens, " & ")
}
