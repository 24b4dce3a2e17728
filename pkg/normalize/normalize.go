// Package normalize canonicalizes fighter names into a comparable form.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// translit maps characters that do not decompose under NFD to plain ASCII.
// Stripping marks handles the accented majority; these survive decomposition
// intact and need direct substitution.
var translit = map[rune]string{
	'Ł': "l", 'ł': "l",
	'Ø': "o", 'ø': "o",
	'Đ': "d", 'đ': "d",
	'Þ': "th", 'þ': "th",
	'Ð': "d", 'ð': "d",
	'ß': "ss",
	'Æ': "ae", 'æ': "ae",
	'Œ': "oe", 'œ': "oe",
}

// Name canonicalizes a display name: transliterate stroked and ligature
// characters, strip combining marks, lowercase, and collapse whitespace.
// Pure and deterministic; empty input normalizes to empty output.
func Name(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	// NFD exposes combining marks so they can be dropped, NFC recomposes
	// whatever is left. Transform errors fall back to the untransformed text
	// rather than failing the pipeline.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		out = b.String()
	}

	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
