// Package score computes lexical relevance of a venue against a query.
//
// For every (searchable field, query token) pair the first matching rule
// in precedence order wins; points are additive across fields and tokens.
// A total of zero means the venue does not match and is excluded from
// text results.
package score

import (
	"strings"

	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/text"
)

// Rule points in precedence order. A whole-word hit outranks a bare
// substring hit even though it awards fewer points, so "Botox Clinic"
// scores 4 for "botox" while "Best Botoxology" scores 5.
const (
	pointsFieldExact    = 10 // field equals token
	pointsWordExact     = 4  // a field word equals token
	pointsSubstring     = 5  // field contains a token longer than 3 chars
	pointsStem          = 3  // a field word stem equals the token stem
	pointsPrefix        = 2  // field contains the leading 70% of a long token
	pointsShortFallback = 1  // 2-3 char token contained in field
)

const shortTokenMax = 3

// Record scores a venue's searchable fields against the query context.
// An empty query scores zero; callers skip scoring entirely in that case.
func Record(fields []string, qc *query.Context) float64 {
	if !qc.HasQuery() {
		return 0
	}
	total := 0
	for _, field := range fields {
		fieldLower := strings.ToLower(field)
		words := text.Normalize(field)
		stems := text.Stems(words)
		for i, token := range qc.Tokens() {
			total += fieldTokenPoints(fieldLower, words, stems, token, qc.Stems()[i])
		}
	}
	return float64(total)
}

// fieldTokenPoints applies the rule precedence for one (field, token) pair.
func fieldTokenPoints(fieldLower string, words, wordStems []string, token, tokenStem string) int {
	if fieldLower == token {
		return pointsFieldExact
	}
	for _, w := range words {
		if w == token {
			return pointsWordExact
		}
	}
	if len(token) > shortTokenMax && strings.Contains(fieldLower, token) {
		return pointsSubstring
	}
	for _, s := range wordStems {
		if s == tokenStem {
			return pointsStem
		}
	}
	if len(token) > shortTokenMax {
		prefix := token[:prefixLen(len(token))]
		if strings.Contains(fieldLower, prefix) {
			return pointsPrefix
		}
	}
	if len(token) >= 2 && len(token) <= shortTokenMax && strings.Contains(fieldLower, token) {
		return pointsShortFallback
	}
	return 0
}

// prefixLen is ceil(0.7 * n).
func prefixLen(n int) int {
	return (7*n + 9) / 10
}
