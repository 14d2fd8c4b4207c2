package pipeline

import (
	"math"
	"sort"

	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/search/sortby"
	"github.com/glowgrid/spadex/internal/domain/venue"
)

// applySort orders candidates in place under the selected strategy.
// All sorts are stable: equal keys preserve the pre-sort relative order.
func applySort(cs []candidate, strategy sortby.Strategy, qc *query.Context) {
	switch strategy {
	case sortby.PriceAsc:
		stableByLess(cs, func(a, b *candidate) bool {
			return sortPrice(&a.venue, qc) < sortPrice(&b.venue, qc)
		})
	case sortby.GoogleRatingDesc:
		stableByLess(cs, func(a, b *candidate) bool {
			return starsOrZero(a.venue.Google()) > starsOrZero(b.venue.Google())
		})
	case sortby.YelpRatingDesc:
		stableByLess(cs, func(a, b *candidate) bool {
			return starsOrZero(a.venue.Yelp()) > starsOrZero(b.venue.Yelp())
		})
	case sortby.GoogleReviewsDesc:
		stableByLess(cs, func(a, b *candidate) bool {
			return reviewsOrZero(a.venue.Google()) > reviewsOrZero(b.venue.Google())
		})
	case sortby.YelpReviewsDesc:
		stableByLess(cs, func(a, b *candidate) bool {
			return reviewsOrZero(a.venue.Yelp()) > reviewsOrZero(b.venue.Yelp())
		})
	case sortby.DistanceAsc:
		// Without a user location the sort is a no-op. Venues missing a
		// coordinate take an infinite sentinel and land at the end,
		// deterministically.
		if _, ok := qc.Location(); !ok {
			return
		}
		stableByLess(cs, func(a, b *candidate) bool {
			return distanceOrInf(a) < distanceOrInf(b)
		})
	case sortby.ConsultationFirst:
		stableByLess(cs, func(a, b *candidate) bool {
			return a.venue.OffersFreeConsultation() && !b.venue.OffersFreeConsultation()
		})
	case sortby.None:
	}
}

func stableByLess(cs []candidate, less func(a, b *candidate) bool) {
	sort.SliceStable(cs, func(i, j int) bool {
		return less(&cs[i], &cs[j])
	})
}

func starsOrZero(r venue.Rating, ok bool) float64 {
	if !ok {
		return 0
	}
	return r.Stars
}

func reviewsOrZero(r venue.Rating, ok bool) int {
	if !ok {
		return 0
	}
	return r.Reviews
}

func distanceOrInf(c *candidate) float64 {
	if !c.hasDistance {
		return math.Inf(1)
	}
	return c.distance
}
