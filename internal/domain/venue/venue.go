// Package venue defines the venue listing aggregate.
package venue

import (
	"fmt"
	"regexp"

	"github.com/glowgrid/spadex/internal/domain/geo"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Rating is one (stars, review count) pair from a single rating source.
type Rating struct {
	Stars   float64
	Reviews int
}

// Treatment is one (name, price) entry from a venue's own menu.
// Price is free text and not guaranteed to be numeric.
type Treatment struct {
	Name  string
	Price string
}

// Venue is a single directory listing (immutable value object).
// Derived search state (scores, distances, highlights) is never stored
// on the venue; it is recomputed per query.
type Venue struct {
	id           string
	name         string
	neighborhood string
	address      string
	location     geo.Point
	hasLocation  bool
	google       *Rating
	yelp         *Rating
	freeConsult  string
	treatments   []Treatment
}

// New validates and creates a Venue.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Name: non-empty.
// Malformed optional data degrades to absent: an out-of-range location is
// dropped, as is a rating with stars outside [0,5] or negative reviews.
func New(
	id, name, neighborhood, address string,
	location *geo.Point,
	google, yelp *Rating,
	freeConsult string,
	treatments []Treatment,
) (Venue, error) {
	if id == "" {
		return Venue{}, fmt.Errorf("venue ID is required")
	}
	if len(id) > 256 {
		return Venue{}, fmt.Errorf("venue ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Venue{}, fmt.Errorf("venue ID must be alphanumeric with underscores and hyphens")
	}
	if name == "" {
		return Venue{}, fmt.Errorf("venue name is required")
	}

	v := Venue{
		id:           id,
		name:         name,
		neighborhood: neighborhood,
		address:      address,
		google:       sanitizeRating(google),
		yelp:         sanitizeRating(yelp),
		freeConsult:  freeConsult,
		treatments:   cloneTreatments(treatments),
	}
	if location != nil && location.Valid() {
		v.location = *location
		v.hasLocation = true
	}
	return v, nil
}

// Reconstruct creates a Venue without validation (storage hydration).
func Reconstruct(
	id, name, neighborhood, address string,
	location *geo.Point,
	google, yelp *Rating,
	freeConsult string,
	treatments []Treatment,
) Venue {
	v := Venue{
		id: id, name: name, neighborhood: neighborhood, address: address,
		google: google, yelp: yelp, freeConsult: freeConsult, treatments: treatments,
	}
	if location != nil {
		v.location = *location
		v.hasLocation = true
	}
	return v
}

// ID returns the venue identifier.
func (v Venue) ID() string { return v.id }

// Name returns the display name.
func (v Venue) Name() string { return v.name }

// Neighborhood returns the neighborhood label.
func (v Venue) Neighborhood() string { return v.neighborhood }

// Address returns the free-form location string.
func (v Venue) Address() string { return v.address }

// Location returns the venue coordinate, if present.
func (v Venue) Location() (geo.Point, bool) { return v.location, v.hasLocation }

// Google returns the Google rating pair, if present.
func (v Venue) Google() (Rating, bool) {
	if v.google == nil {
		return Rating{}, false
	}
	return *v.google, true
}

// Yelp returns the Yelp rating pair, if present.
func (v Venue) Yelp() (Rating, bool) {
	if v.yelp == nil {
		return Rating{}, false
	}
	return *v.yelp, true
}

// FreeConsultation returns the free-consultation label.
func (v Venue) FreeConsultation() string { return v.freeConsult }

// OffersFreeConsultation reports whether a consultation label is set.
func (v Venue) OffersFreeConsultation() bool { return v.freeConsult != "" }

// Treatments returns the venue's treatment menu in catalog order.
func (v Venue) Treatments() []Treatment { return v.treatments }

// SearchFields returns the searchable text fields: name, neighborhood,
// address, and every treatment name. Empty fields are skipped.
func (v Venue) SearchFields() []string {
	fields := make([]string, 0, 3+len(v.treatments))
	for _, f := range []string{v.name, v.neighborhood, v.address} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	for _, tr := range v.treatments {
		if tr.Name != "" {
			fields = append(fields, tr.Name)
		}
	}
	return fields
}

func sanitizeRating(r *Rating) *Rating {
	if r == nil {
		return nil
	}
	if r.Stars < 0 || r.Stars > 5 || r.Reviews < 0 {
		return nil
	}
	c := *r
	return &c
}

func cloneTreatments(ts []Treatment) []Treatment {
	if ts == nil {
		return nil
	}
	c := make([]Treatment, len(ts))
	copy(c, ts)
	return c
}
