package catalog

import (
	"context"
	"fmt"

	"github.com/glowgrid/spadex/internal/domain"
	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
)

// Service handles treatment catalog operations.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores the catalog for a venue name.
func (s *Service) Upsert(ctx context.Context, venueName string, entries []domcatalog.Entry) (domcatalog.Catalog, error) {
	c, err := domcatalog.New(venueName, entries)
	if err != nil {
		return domcatalog.Catalog{}, fmt.Errorf("validate catalog: %w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		return domcatalog.Catalog{}, fmt.Errorf("upsert catalog: %w", err)
	}
	return c, nil
}

// Get retrieves the catalog joined to a venue display name.
func (s *Service) Get(ctx context.Context, venueName string) (domcatalog.Catalog, error) {
	c, err := s.repo.Get(ctx, venueName)
	if err != nil {
		return domcatalog.Catalog{}, fmt.Errorf("get catalog: %w", err)
	}
	return c, nil
}

// List returns every stored catalog.
func (s *Service) List(ctx context.Context) ([]domcatalog.Catalog, error) {
	catalogs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	return catalogs, nil
}
