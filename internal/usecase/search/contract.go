package search

import (
	"context"

	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// VenueReader reads the venue corpus for a search run.
type VenueReader interface {
	List(ctx context.Context) ([]domvenue.Venue, error)
}

// CatalogReader reads all external treatment catalogs for the join.
type CatalogReader interface {
	List(ctx context.Context) ([]domcatalog.Catalog, error)
}
