// Package pipeline composes the search engine stages: score and prune,
// facet filtering, and sorting. Every run is a pure function of its
// inputs; venues are never mutated and nothing is cached across runs.
// A linear scan is deliberate: record sets are small and an index would
// be over-engineering.
package pipeline

import (
	"math"

	"github.com/glowgrid/spadex/internal/domain/catalog"
	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/search/facets"
	"github.com/glowgrid/spadex/internal/domain/search/highlight"
	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/search/result"
	"github.com/glowgrid/spadex/internal/domain/search/score"
	"github.com/glowgrid/spadex/internal/domain/search/sortby"
	"github.com/glowgrid/spadex/internal/domain/venue"
)

// Catalog resolves a venue's external treatment catalog by display name.
// Implementations match the name case-insensitively; a venue without a
// catalog resolves to nil.
type Catalog interface {
	Lookup(venueName string) []catalog.Entry
}

// candidate is a venue in flight through the stages.
type candidate struct {
	venue       venue.Venue
	score       float64
	distance    float64
	hasDistance bool
}

// Run executes the stages in fixed order: score and prune when the query
// is non-empty, filter when any facet is active, sort when a strategy is
// selected. With no query and no strategy the input order is preserved.
func Run(
	venues []venue.Venue,
	qc *query.Context,
	sel facets.Selection,
	strategy sortby.Strategy,
	cat Catalog,
) []result.Result {
	candidates := gather(venues, qc)

	if !sel.IsEmpty() {
		filtered := candidates[:0]
		for _, c := range candidates {
			if passesFacets(&c, sel, qc, cat) {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}

	if strategy != sortby.None {
		applySort(candidates, strategy, qc)
	}

	results := make([]result.Result, 0, len(candidates))
	for _, c := range candidates {
		var dist *float64
		if c.hasDistance {
			d := c.distance
			dist = &d
		}
		results = append(results, result.New(
			c.venue, c.score, dist, highlight.Text(c.venue.Name(), qc.Tokens()),
		))
	}
	return results
}

// gather scores and prunes when a query is present, and computes the
// per-venue distance when the user location is known.
func gather(venues []venue.Venue, qc *query.Context) []candidate {
	userLoc, hasUser := qc.Location()
	out := make([]candidate, 0, len(venues))
	for _, v := range venues {
		c := candidate{venue: v}
		if qc.HasQuery() {
			c.score = score.Record(v.SearchFields(), qc)
			if c.score == 0 {
				continue
			}
		}
		if hasUser {
			if loc, ok := v.Location(); ok {
				c.distance = geo.DistanceMiles(userLoc.Lat, userLoc.Lng, loc.Lat, loc.Lng)
				c.hasDistance = true
			}
		}
		out = append(out, c)
	}
	return out
}

// extractPrice resolves a venue's price in the context of the active
// query: the first menu entry whose treatment name contains the query.
// Without a query there is no price target, so ok is false.
func extractPrice(v *venue.Venue, qc *query.Context) (float64, bool) {
	q := lowerTrim(qc.Raw())
	if q == "" {
		return 0, false
	}
	for _, tr := range v.Treatments() {
		if containsFold(tr.Name, q) {
			return catalog.PriceValue(tr.Price)
		}
	}
	return 0, false
}

// sortPrice is the price-ascending sort key; missing prices sort last.
func sortPrice(v *venue.Venue, qc *query.Context) float64 {
	if p, ok := extractPrice(v, qc); ok {
		return p
	}
	return math.Inf(1)
}
