package venue

import (
	"context"
	"fmt"

	"github.com/glowgrid/spadex/internal/domain"
	"github.com/glowgrid/spadex/internal/domain/geo"
	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// Input carries the raw fields for the venue aggregate; domain
// validation happens in Upsert.
type Input struct {
	ID           string
	Name         string
	Neighborhood string
	Address      string
	Location     *geo.Point
	Google       *domvenue.Rating
	Yelp         *domvenue.Rating
	FreeConsult  string
	Treatments   []domvenue.Treatment
}

// Service handles venue CRUD operations.
type Service struct {
	repo Repository
}

// New creates a venue service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores a venue. Returns true if created.
func (s *Service) Upsert(ctx context.Context, in Input) (domvenue.Venue, bool, error) {
	v, err := domvenue.New(
		in.ID, in.Name, in.Neighborhood, in.Address,
		in.Location, in.Google, in.Yelp, in.FreeConsult, in.Treatments,
	)
	if err != nil {
		return domvenue.Venue{}, false, fmt.Errorf("validate venue: %w: %w", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Upsert(ctx, v)
	if err != nil {
		return domvenue.Venue{}, false, fmt.Errorf("upsert venue: %w", err)
	}
	return v, created, nil
}

// Get retrieves a venue by ID.
func (s *Service) Get(ctx context.Context, id string) (domvenue.Venue, error) {
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return domvenue.Venue{}, fmt.Errorf("get venue: %w", err)
	}
	return v, nil
}

// List returns all venues in insertion order.
func (s *Service) List(ctx context.Context) ([]domvenue.Venue, error) {
	venues, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

// Delete removes a venue.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}
