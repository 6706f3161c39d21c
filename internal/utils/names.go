package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yukikurage/project-tracker-api/internal/constants"
)

// TitleCase upper-cases the first letter of every run of cased letters and
// lower-cases the rest of the run. Any uncased rune ends a run, digits and
// apostrophes included, so "o'neil" becomes "O'Neil" and "john2doe" becomes
// "John2Doe".
func TitleCase(s string) string {
	// A Caser carries state and must not be shared between goroutines
	caser := cases.Title(language.Und)

	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if isCased(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(caser.String(s[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(caser.String(s[start:]))
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// HandleBase derives the base login handle from a display name: title-cased,
// stripped to letters and digits, truncated to MaxHandleLength runes.
func HandleBase(fullName string) string {
	var b strings.Builder
	count := 0
	for _, r := range TitleCase(fullName) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(r)
		count++
		if count == constants.MaxHandleLength {
			break
		}
	}

	if b.Len() == 0 {
		return constants.FallbackHandle
	}
	return b.String()
}

// HandleCandidate returns the n-th candidate for base: base itself for n == 0,
// base followed by n otherwise. The base is shortened so the result never
// exceeds MaxHandleLength runes.
func HandleCandidate(base string, n int) string {
	if n == 0 {
		return base
	}
	suffix := strconv.Itoa(n)
	runes := []rune(base)
	if keep := constants.MaxHandleLength - len(suffix); len(runes) > keep {
		runes = runes[:keep]
	}
	return string(runes) + suffix
}

// SplitFullName splits a display name into a given name (first token, as
// typed) and a title-cased family name built from the remaining tokens.
func SplitFullName(fullName string) (first, last string) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "", ""
	}
	first = fields[0]
	if len(fields) > 1 {
		last = TitleCase(strings.Join(fields[1:], " "))
	}
	return first, last
}

// Initials concatenates the upper-cased first rune of every whitespace
// separated word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
