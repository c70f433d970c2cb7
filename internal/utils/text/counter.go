// Package text provides small helpers for Unicode-aware text length handling.
package text

import "unicode/utf8"

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("こんにちは") // returns 5
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// TruncateRunes cuts text to at most limit runes without splitting a
// multi-byte character. A non-positive limit returns text unchanged.
func TruncateRunes(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i], true
		}
		n++
	}
	return text, false
}
