// Package text provides query tokenization and a domain stemmer for
// treatment vocabulary. Both functions are pure and ASCII-only.
package text

import "strings"

// minStemInput is the token length below which stemming is skipped,
// so acronyms like "IPL" or "RF" come back unchanged.
const minStemInput = 3

// overrides maps inflected treatment vocabulary to a canonical stem where
// plain suffix stripping would get it wrong or not fire at all.
var overrides = map[string]string{
	"peeling":       "peel",
	"peels":         "peel",
	"waxing":        "wax",
	"therapies":     "therapy",
	"microneedling": "microneedle",
	"tightening":    "tighten",
	"whitening":     "whiten",
	"brightening":   "brighten",
	"lifting":       "lift",
	"slimming":      "slim",
	"plumping":      "plump",
	"resurfacing":   "resurface",
	"sculpting":     "sculpt",
	"contouring":    "contour",
	"freezing":      "freeze",
	"botulinum":     "botox",
}

// suffixes are stripped in order, longest first, so "-tion" wins over "-s".
var suffixes = []string{"tion", "sion", "ment", "ness", "ies", "ing", "ed", "es", "ly", "s"}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '(', ')', '-', '/':
		return true
	}
	return false
}

// Normalize lowercases text and splits it into tokens on whitespace,
// commas, parentheses, hyphens, and slashes. Empty tokens are dropped.
func Normalize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), isSeparator)
}

// Stem reduces a lowercase token to its canonical form. The override table
// is consulted first; otherwise a known suffix is stripped only when the
// remaining stem is at least two characters longer than the suffix, which
// keeps short words intact ("sing" does not become "s").
func Stem(token string) string {
	if len(token) < minStemInput {
		return token
	}
	if stem, ok := overrides[token]; ok {
		return stem
	}
	for _, suf := range suffixes {
		if !strings.HasSuffix(token, suf) {
			continue
		}
		rest := len(token) - len(suf)
		if rest >= len(suf)+2 {
			return token[:rest]
		}
	}
	return token
}

// Stems maps Stem over a token list.
func Stems(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = Stem(tok)
	}
	return out
}
