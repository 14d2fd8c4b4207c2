// Package result defines the transient search hit. Results are built
// fresh per pipeline run and never persisted.
package result

import (
	"github.com/glowgrid/spadex/internal/domain/search/highlight"
	"github.com/glowgrid/spadex/internal/domain/venue"
)

// Result is a single search hit: the venue, its relevance score, the
// distance from the user when computable, and name highlight segments.
type Result struct {
	venue       venue.Venue
	score       float64
	distance    float64
	hasDistance bool
	highlights  []highlight.Segment
}

// New creates a search result. distanceMiles is nil when either the user
// or the venue has no usable coordinate.
func New(v venue.Venue, score float64, distanceMiles *float64, highlights []highlight.Segment) Result {
	r := Result{venue: v, score: score, highlights: highlights}
	if distanceMiles != nil {
		r.distance = *distanceMiles
		r.hasDistance = true
	}
	return r
}

// Venue returns the matched venue.
func (r Result) Venue() venue.Venue { return r.venue }

// Score returns the relevance score (0 when no query was given).
func (r Result) Score() float64 { return r.score }

// DistanceMiles returns the distance from the user, if computed.
func (r Result) DistanceMiles() (float64, bool) { return r.distance, r.hasDistance }

// NameHighlights returns the venue name segmented by query matches.
func (r Result) NameHighlights() []highlight.Segment { return r.highlights }
