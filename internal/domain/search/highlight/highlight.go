// Package highlight annotates display text with query match spans.
package highlight

import (
	"sort"
	"strings"
)

// minTokenLen is the shortest token worth highlighting. One-char tokens
// still contribute weak score signal but are too noisy to mark up.
const minTokenLen = 2

// Segment is one run of text, flagged when it matched a query token.
type Segment struct {
	Text  string
	Match bool
}

type span struct{ start, end int }

// Text splits s into a left-to-right, non-overlapping segmentation where
// every occurrence of any token (case-insensitive) is a matched segment.
// Overlapping and adjacent matches are merged. Concatenating the segment
// texts reconstructs s exactly.
func Text(s string, tokens []string) []Segment {
	if s == "" {
		return nil
	}
	spans := collectSpans(strings.ToLower(s), tokens)
	if len(spans) == 0 {
		return []Segment{{Text: s}}
	}

	segments := make([]Segment, 0, 2*len(spans)+1)
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			segments = append(segments, Segment{Text: s[pos:sp.start]})
		}
		segments = append(segments, Segment{Text: s[sp.start:sp.end], Match: true})
		pos = sp.end
	}
	if pos < len(s) {
		segments = append(segments, Segment{Text: s[pos:]})
	}
	return segments
}

// collectSpans finds all token occurrences in the lowercased text and
// merges overlapping or touching spans.
func collectSpans(lower string, tokens []string) []span {
	var spans []span
	for _, tok := range tokens {
		tok = strings.ToLower(tok)
		if len(tok) < minTokenLen {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], tok)
			if i < 0 {
				break
			}
			start := from + i
			spans = append(spans, span{start: start, end: start + len(tok)})
			from = start + 1
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
