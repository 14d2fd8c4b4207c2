package venue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/glowgrid/spadex/internal/db"
	"github.com/glowgrid/spadex/internal/domain"
	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// store is the consumer interface for venues (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/venue.Repository and the venue side of
// usecase/search.VenueReader.
type Repo struct {
	store  store
	prefix string
}

// New creates a venue repository. Keys are namespaced with prefix.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert creates or updates a venue. Returns true if created.
// Newly created venues are appended to the insertion-order index so
// List can return them in the order they were first stored.
func (r *Repo) Upsert(ctx context.Context, v domvenue.Venue) (bool, error) {
	key := r.venueKey(v.ID())
	data, err := json.Marshal(toDTO(v))
	if err != nil {
		return false, fmt.Errorf("marshal venue: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}

	if !exists {
		if err := r.appendOrder(ctx, v.ID()); err != nil {
			return false, err
		}
	}
	return !exists, nil
}

// Get returns a venue by ID.
func (r *Repo) Get(ctx context.Context, id string) (domvenue.Venue, error) {
	key := r.venueKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domvenue.Venue{}, domain.ErrVenueNotFound
		}
		return domvenue.Venue{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseVenue(raw)
}

// List returns all venues in insertion order.
func (r *Repo) List(ctx context.Context) ([]domvenue.Venue, error) {
	ids, err := r.readOrder(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domvenue.Venue{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.venueKey(id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("json.get multi: %w", err)
	}

	venues := make([]domvenue.Venue, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue // deleted since the order index was read
		}
		v, err := parseVenue(raw)
		if err != nil {
			return nil, fmt.Errorf("parse venue %s: %w", ids[i], err)
		}
		venues = append(venues, v)
	}
	return venues, nil
}

// Delete removes a venue and its order-index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.venueKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrVenueNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return r.removeOrder(ctx, id)
}

func (r *Repo) venueKey(id string) string {
	return r.prefix + "venue:" + id
}

func (r *Repo) orderKey() string {
	return r.prefix + "venues:order"
}

func (r *Repo) readOrder(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, r.orderKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order index: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode order index: %w", err)
	}
	return ids, nil
}

func (r *Repo) writeOrder(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode order index: %w", err)
	}
	if err := r.store.Set(ctx, r.orderKey(), data); err != nil {
		return fmt.Errorf("set order index: %w", err)
	}
	return nil
}

func (r *Repo) appendOrder(ctx context.Context, id string) error {
	ids, err := r.readOrder(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return r.writeOrder(ctx, append(ids, id))
}

func (r *Repo) removeOrder(ctx context.Context, id string) error {
	ids, err := r.readOrder(ctx)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(ids) {
		return nil
	}
	return r.writeOrder(ctx, kept)
}
