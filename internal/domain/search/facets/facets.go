// Package facets defines the user-chosen filter state. Every field is
// optional; an unset facet is a no-op. Malformed values (inverted price
// ranges, out-of-range star buckets, non-positive radii) are treated as
// unset rather than rejected, so the engine stays total over its inputs.
package facets

// Range is an inclusive numeric price range.
type Range struct {
	Min float64
	Max float64
}

// Selection is one user's active filter state. The zero value filters
// nothing. With* methods return a modified copy; a Selection is never
// mutated after it reaches the pipeline.
type Selection struct {
	priceRange       *Range
	googleStars      []int
	yelpStars        []int
	minGoogleReviews int
	minYelpReviews   int
	categories       []string
	efficacies       []string
	neighborhoods    []string
	maxDistanceMiles float64
	freeConsult      *bool
}

// NewSelection returns an empty Selection.
func NewSelection() Selection { return Selection{} }

// WithPriceRange sets an inclusive price range. Negative bounds or an
// inverted range leave the facet unset.
func (s Selection) WithPriceRange(min, max float64) Selection {
	if min < 0 || max < 0 || min > max {
		return s
	}
	s.priceRange = &Range{Min: min, Max: max}
	return s
}

// WithGoogleStars sets the Google star buckets. A venue passes when the
// integer floor of its rating is in the set. Buckets outside [0,5] are
// discarded.
func (s Selection) WithGoogleStars(buckets ...int) Selection {
	s.googleStars = validBuckets(buckets)
	return s
}

// WithYelpStars sets the Yelp star buckets.
func (s Selection) WithYelpStars(buckets ...int) Selection {
	s.yelpStars = validBuckets(buckets)
	return s
}

// WithMinGoogleReviews sets the minimum Google review count. Non-positive
// thresholds leave the facet unset.
func (s Selection) WithMinGoogleReviews(n int) Selection {
	if n > 0 {
		s.minGoogleReviews = n
	}
	return s
}

// WithMinYelpReviews sets the minimum Yelp review count.
func (s Selection) WithMinYelpReviews(n int) Selection {
	if n > 0 {
		s.minYelpReviews = n
	}
	return s
}

// WithCategories sets the selected treatment categories (OR within the
// facet). Blank values are discarded.
func (s Selection) WithCategories(categories ...string) Selection {
	s.categories = nonEmpty(categories)
	return s
}

// WithEfficacies sets the selected effect/efficacy tags.
func (s Selection) WithEfficacies(efficacies ...string) Selection {
	s.efficacies = nonEmpty(efficacies)
	return s
}

// WithNeighborhoods sets the selected neighborhoods.
func (s Selection) WithNeighborhoods(neighborhoods ...string) Selection {
	s.neighborhoods = nonEmpty(neighborhoods)
	return s
}

// WithMaxDistance sets the maximum distance radius in miles. Non-positive
// radii leave the facet unset.
func (s Selection) WithMaxDistance(miles float64) Selection {
	if miles > 0 {
		s.maxDistanceMiles = miles
	}
	return s
}

// WithFreeConsultation requires (true) or forbids (false) a
// free-consultation offer.
func (s Selection) WithFreeConsultation(required bool) Selection {
	s.freeConsult = &required
	return s
}

// IsEmpty reports whether no facet is active.
func (s Selection) IsEmpty() bool {
	return s.priceRange == nil &&
		len(s.googleStars) == 0 && len(s.yelpStars) == 0 &&
		s.minGoogleReviews == 0 && s.minYelpReviews == 0 &&
		len(s.categories) == 0 && len(s.efficacies) == 0 && len(s.neighborhoods) == 0 &&
		s.maxDistanceMiles == 0 && s.freeConsult == nil
}

// PriceRange returns the inclusive price range, or nil.
func (s Selection) PriceRange() *Range { return s.priceRange }

// GoogleStars returns the Google star buckets.
func (s Selection) GoogleStars() []int { return s.googleStars }

// YelpStars returns the Yelp star buckets.
func (s Selection) YelpStars() []int { return s.yelpStars }

// MinGoogleReviews returns the Google review threshold (0 = unset).
func (s Selection) MinGoogleReviews() int { return s.minGoogleReviews }

// MinYelpReviews returns the Yelp review threshold (0 = unset).
func (s Selection) MinYelpReviews() int { return s.minYelpReviews }

// Categories returns the selected treatment categories.
func (s Selection) Categories() []string { return s.categories }

// Efficacies returns the selected efficacy tags.
func (s Selection) Efficacies() []string { return s.efficacies }

// Neighborhoods returns the selected neighborhoods.
func (s Selection) Neighborhoods() []string { return s.neighborhoods }

// MaxDistanceMiles returns the distance radius (0 = unset).
func (s Selection) MaxDistanceMiles() float64 { return s.maxDistanceMiles }

// FreeConsultation returns the consultation requirement, or nil.
func (s Selection) FreeConsultation() *bool { return s.freeConsult }

func validBuckets(buckets []int) []int {
	out := make([]int, 0, len(buckets))
	for _, b := range buckets {
		if b >= 0 && b <= 5 {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
