package pipeline

import (
	"math"
	"strings"

	"github.com/glowgrid/spadex/internal/domain/search/facets"
	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/venue"
)

// passesFacets applies every active facet predicate as a logical AND.
// Missing data never passes an active predicate; it is excluded, not an
// error.
func passesFacets(c *candidate, sel facets.Selection, qc *query.Context, cat Catalog) bool {
	return passesPrice(c, sel, qc) &&
		passesStars(c, sel) &&
		passesReviews(c, sel) &&
		passesTags(c, sel, cat) &&
		passesDistance(c, sel, qc) &&
		passesConsultation(c, sel)
}

func passesPrice(c *candidate, sel facets.Selection, qc *query.Context) bool {
	r := sel.PriceRange()
	if r == nil {
		return true
	}
	price, ok := extractPrice(&c.venue, qc)
	if !ok {
		return false
	}
	return price >= r.Min && price <= r.Max
}

// passesStars buckets by integer floor: selecting 4 matches 4.0-4.99.
func passesStars(c *candidate, sel facets.Selection) bool {
	if !starsInBuckets(ratingStars(c.venue.Google()), sel.GoogleStars()) {
		return false
	}
	return starsInBuckets(ratingStars(c.venue.Yelp()), sel.YelpStars())
}

func ratingStars(r venue.Rating, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &r.Stars
}

func starsInBuckets(stars *float64, buckets []int) bool {
	if len(buckets) == 0 {
		return true
	}
	if stars == nil {
		return false
	}
	bucket := int(math.Floor(*stars))
	for _, b := range buckets {
		if b == bucket {
			return true
		}
	}
	return false
}

func passesReviews(c *candidate, sel facets.Selection) bool {
	if threshold := sel.MinGoogleReviews(); threshold > 0 {
		r, ok := c.venue.Google()
		if !ok || r.Reviews < threshold {
			return false
		}
	}
	if threshold := sel.MinYelpReviews(); threshold > 0 {
		r, ok := c.venue.Yelp()
		if !ok || r.Reviews < threshold {
			return false
		}
	}
	return true
}

// passesTags checks the categorical facets: treatment category and
// efficacy via the external catalog, neighborhood from the venue itself.
// Each facet is OR within its selected set, AND across facets.
func passesTags(c *candidate, sel facets.Selection, cat Catalog) bool {
	if hoods := sel.Neighborhoods(); len(hoods) > 0 {
		if !anyFold(hoods, c.venue.Neighborhood()) {
			return false
		}
	}

	needCategories := len(sel.Categories()) > 0
	needEfficacies := len(sel.Efficacies()) > 0
	if !needCategories && !needEfficacies {
		return true
	}

	entries := cat.Lookup(c.venue.Name())
	if needCategories && !anyEntryMatch(sel.Categories(), len(entries), func(i int) string {
		return entries[i].Category
	}) {
		return false
	}
	if needEfficacies && !anyEntryMatch(sel.Efficacies(), len(entries), func(i int) string {
		return entries[i].Efficacy
	}) {
		return false
	}
	return true
}

func passesDistance(c *candidate, sel facets.Selection, qc *query.Context) bool {
	radius := sel.MaxDistanceMiles()
	if radius <= 0 {
		return true
	}
	// An active radius with no user location or no venue coordinate
	// excludes the venue rather than silently including it.
	if _, ok := qc.Location(); !ok {
		return false
	}
	if !c.hasDistance {
		return false
	}
	return c.distance <= radius
}

func passesConsultation(c *candidate, sel facets.Selection) bool {
	want := sel.FreeConsultation()
	if want == nil {
		return true
	}
	return c.venue.OffersFreeConsultation() == *want
}

func anyEntryMatch(selected []string, n int, valueAt func(i int) string) bool {
	for i := 0; i < n; i++ {
		if anyFold(selected, valueAt(i)) {
			return true
		}
	}
	return false
}

// anyFold reports whether value equals any of selected, ignoring case.
func anyFold(selected []string, value string) bool {
	for _, s := range selected {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(haystack, needleLower string) bool {
	return strings.Contains(strings.ToLower(haystack), needleLower)
}
