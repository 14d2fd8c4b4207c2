package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glowgrid/spadex/internal/db"
	"github.com/glowgrid/spadex/internal/domain"
	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
)

// store is the consumer interface for catalogs (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/catalog.Repository and the catalog side of
// usecase/search.CatalogReader.
type Repo struct {
	store  store
	prefix string
}

// New creates a catalog repository. Keys are namespaced with prefix and
// derived from the normalized venue name, so lookups by display name are
// case-insensitive.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert stores the catalog for a venue name, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, c domcatalog.Catalog) error {
	key := r.catalogKey(c.VenueName())
	data, err := json.Marshal(toDTO(c))
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns the catalog joined to a venue display name.
func (r *Repo) Get(ctx context.Context, venueName string) (domcatalog.Catalog, error) {
	key := r.catalogKey(venueName)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcatalog.Catalog{}, domain.ErrCatalogNotFound
		}
		return domcatalog.Catalog{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseCatalog(raw)
}

// List returns every stored catalog. Order is unspecified; the search
// pipeline indexes them by join key before use.
func (r *Repo) List(ctx context.Context) ([]domcatalog.Catalog, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"catalog:*")
	if err != nil {
		return nil, fmt.Errorf("scan catalogs: %w", err)
	}
	if len(keys) == 0 {
		return []domcatalog.Catalog{}, nil
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get multi: %w", err)
	}

	catalogs := make([]domcatalog.Catalog, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		c, err := parseCatalog(raw)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", keys[i], err)
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, nil
}

func (r *Repo) catalogKey(venueName string) string {
	return r.prefix + "catalog:" + domcatalog.Key(venueName)
}
