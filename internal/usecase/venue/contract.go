package venue

import (
	"context"

	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// Repository defines the storage contract for venue listings.
type Repository interface {
	Upsert(ctx context.Context, v domvenue.Venue) (created bool, err error)
	Get(ctx context.Context, id string) (domvenue.Venue, error)
	List(ctx context.Context) ([]domvenue.Venue, error)
	Delete(ctx context.Context, id string) error
}
