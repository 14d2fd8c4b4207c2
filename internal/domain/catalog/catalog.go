// Package catalog defines the per-venue treatment catalog supplied by an
// external lookup table, joined to venues by case-insensitive display name.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one treatment tuple from the external catalog.
type Entry struct {
	Name     string
	Category string
	Efficacy string
	Price    string
	Currency string
}

// Catalog is the treatment list for one venue (immutable value object).
type Catalog struct {
	venueName string
	entries   []Entry
}

// New validates and creates a Catalog. The venue name is the join key
// against venue display names and is required.
func New(venueName string, entries []Entry) (Catalog, error) {
	if strings.TrimSpace(venueName) == "" {
		return Catalog{}, fmt.Errorf("venue name is required")
	}
	c := Catalog{venueName: venueName}
	if entries != nil {
		c.entries = make([]Entry, len(entries))
		copy(c.entries, entries)
	}
	return c, nil
}

// Reconstruct creates a Catalog without validation (storage hydration).
func Reconstruct(venueName string, entries []Entry) Catalog {
	return Catalog{venueName: venueName, entries: entries}
}

// VenueName returns the venue display name this catalog belongs to.
func (c Catalog) VenueName() string { return c.venueName }

// Entries returns the treatment entries in catalog order.
func (c Catalog) Entries() []Entry { return c.entries }

// Key normalizes a venue name for the catalog join.
func Key(venueName string) string {
	return strings.ToLower(strings.TrimSpace(venueName))
}

var priceDigits = regexp.MustCompile(`\$?(\d+)`)

// PriceValue extracts the first run of digits from a free-text price
// string ("$120 per session" yields 120). ok is false when the string
// carries no digits, e.g. "Contact for pricing".
func PriceValue(price string) (float64, bool) {
	m := priceDigits.FindStringSubmatch(price)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
