package search

import (
	"context"

	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// mockVenues implements VenueReader for tests.
type mockVenues struct {
	listFn func(ctx context.Context) ([]domvenue.Venue, error)
}

func (m *mockVenues) List(ctx context.Context) ([]domvenue.Venue, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// mockCatalogs implements CatalogReader for tests.
type mockCatalogs struct {
	listFn func(ctx context.Context) ([]domcatalog.Catalog, error)
}

func (m *mockCatalogs) List(ctx context.Context) ([]domcatalog.Catalog, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
