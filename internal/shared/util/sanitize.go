package util

import (
	"regexp"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChar    = regexp.MustCompile(`[^\w.-]`)
)

// SanitizeFileName turns a user-supplied file name into a storage-safe one:
// accents are stripped, whitespace runs become "_" and anything outside
// [A-Za-z0-9_.-] becomes "_". Path separators therefore never survive.
func SanitizeFileName(name string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), name)
	if err != nil {
		stripped = name
	}
	s := whitespaceRun.ReplaceAllString(stripped, "_")
	return unsafeChar.ReplaceAllString(s, "_")
}
