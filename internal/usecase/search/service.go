package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/glowgrid/spadex/internal/domain"
	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/search/facets"
	"github.com/glowgrid/spadex/internal/domain/search/pipeline"
	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/search/result"
	"github.com/glowgrid/spadex/internal/domain/search/sortby"
)

// Params carries one search invocation. The zero value is a valid
// match-all search in stored order.
type Params struct {
	Query    string
	Location *geo.Point
	Facets   facets.Selection
	Sort     sortby.Strategy
	Limit    int // 0 = no limit
}

// Limits bounds what a single search request may ask for.
type Limits struct {
	MaxQueryLen int
	MaxResults  int // 0 = unlimited
}

// Options enumerates the facet values present in the stored data,
// for building filter UIs.
type Options struct {
	Neighborhoods []string
	Categories    []string
	Efficacies    []string
	Sorts         []sortby.Strategy
}

// Service runs the search pipeline over the stored venues and catalogs.
type Service struct {
	venues   VenueReader
	catalogs CatalogReader
	limits   Limits
}

// New creates a search service.
func New(venues VenueReader, catalogs CatalogReader, limits Limits) *Service {
	return &Service{venues: venues, catalogs: catalogs, limits: limits}
}

// Search loads the corpus and runs the score/filter/sort pipeline.
func (s *Service) Search(ctx context.Context, p Params) ([]result.Result, error) {
	if s.limits.MaxQueryLen > 0 && len(p.Query) > s.limits.MaxQueryLen {
		return nil, fmt.Errorf("%w: query exceeds %d characters", domain.ErrInvalidInput, s.limits.MaxQueryLen)
	}
	if !p.Sort.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, p.Sort)
	}

	venues, err := s.venues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	catalogs, err := s.catalogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}

	qc := query.New(p.Query, p.Location)
	results := pipeline.Run(venues, &qc, p.Facets, p.Sort, newCatalogIndex(catalogs))

	limit := p.Limit
	if s.limits.MaxResults > 0 && (limit <= 0 || limit > s.limits.MaxResults) {
		limit = s.limits.MaxResults
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FacetOptions enumerates the distinct facet values across all stored
// venues and catalogs.
func (s *Service) FacetOptions(ctx context.Context) (Options, error) {
	venues, err := s.venues.List(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("list venues: %w", err)
	}
	catalogs, err := s.catalogs.List(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("list catalogs: %w", err)
	}

	neighborhoods := newValueSet()
	for _, v := range venues {
		neighborhoods.add(v.Neighborhood())
	}
	categories := newValueSet()
	efficacies := newValueSet()
	for _, c := range catalogs {
		for _, e := range c.Entries() {
			categories.add(e.Category)
			efficacies.add(e.Efficacy)
		}
	}

	return Options{
		Neighborhoods: neighborhoods.sorted(),
		Categories:    categories.sorted(),
		Efficacies:    efficacies.sorted(),
		Sorts:         sortby.All(),
	}, nil
}

// catalogIndex joins catalogs to venues by normalized display name.
type catalogIndex map[string][]domcatalog.Entry

func newCatalogIndex(catalogs []domcatalog.Catalog) catalogIndex {
	idx := make(catalogIndex, len(catalogs))
	for _, c := range catalogs {
		idx[domcatalog.Key(c.VenueName())] = c.Entries()
	}
	return idx
}

func (idx catalogIndex) Lookup(venueName string) []domcatalog.Entry {
	return idx[domcatalog.Key(venueName)]
}

// valueSet deduplicates case-insensitively, keeping first-seen casing.
type valueSet struct {
	seen   map[string]struct{}
	values []string
}

func newValueSet() *valueSet {
	return &valueSet{seen: make(map[string]struct{})}
}

func (s *valueSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.values = append(s.values, v)
}

func (s *valueSet) sorted() []string {
	sort.Slice(s.values, func(i, j int) bool {
		return strings.ToLower(s.values[i]) < strings.ToLower(s.values[j])
	})
	return s.values
}
