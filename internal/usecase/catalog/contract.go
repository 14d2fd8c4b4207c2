package catalog

import (
	"context"

	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
)

// Repository defines the storage contract for treatment catalogs.
type Repository interface {
	Upsert(ctx context.Context, c domcatalog.Catalog) error
	Get(ctx context.Context, venueName string) (domcatalog.Catalog, error)
	List(ctx context.Context) ([]domcatalog.Catalog, error)
}
