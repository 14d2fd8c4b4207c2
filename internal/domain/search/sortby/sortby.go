// Package sortby enumerates the mutually exclusive result orderings.
package sortby

// Strategy is a total ordering applied after filtering. At most one is
// active; selecting a new strategy replaces the previous one.
type Strategy string

// Sort strategy constants.
const (
	// None preserves the pre-sort order.
	None              Strategy = ""
	PriceAsc          Strategy = "price_asc"
	GoogleRatingDesc  Strategy = "google_rating_desc"
	YelpRatingDesc    Strategy = "yelp_rating_desc"
	GoogleReviewsDesc Strategy = "google_reviews_desc"
	YelpReviewsDesc   Strategy = "yelp_reviews_desc"
	DistanceAsc       Strategy = "distance_asc"
	// ConsultationFirst is a stable partition: venues offering a free
	// consultation first, relative order otherwise preserved.
	ConsultationFirst Strategy = "consultation_first"
)

// All returns every selectable strategy, excluding None.
func All() []Strategy {
	return []Strategy{
		PriceAsc, GoogleRatingDesc, YelpRatingDesc,
		GoogleReviewsDesc, YelpReviewsDesc, DistanceAsc, ConsultationFirst,
	}
}

// IsValid checks if the strategy is one of the supported values.
func (s Strategy) IsValid() bool {
	switch s {
	case None, PriceAsc, GoogleRatingDesc, YelpRatingDesc,
		GoogleReviewsDesc, YelpReviewsDesc, DistanceAsc, ConsultationFirst:
		return true
	}
	return false
}
