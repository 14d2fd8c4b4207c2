package catalog

import (
	"encoding/json"
	"fmt"

	domcatalog "github.com/glowgrid/spadex/internal/domain/catalog"
)

// catalogDTO is the JSON document stored under catalog keys.
type catalogDTO struct {
	VenueName string     `json:"venue_name"`
	Entries   []entryDTO `json:"entries,omitempty"`
}

type entryDTO struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Efficacy string `json:"efficacy,omitempty"`
	Price    string `json:"price,omitempty"`
	Currency string `json:"currency,omitempty"`
}

func toDTO(c domcatalog.Catalog) catalogDTO {
	dto := catalogDTO{VenueName: c.VenueName()}
	for _, e := range c.Entries() {
		dto.Entries = append(dto.Entries, entryDTO{
			Name:     e.Name,
			Category: e.Category,
			Efficacy: e.Efficacy,
			Price:    e.Price,
			Currency: e.Currency,
		})
	}
	return dto
}

func fromDTO(dto catalogDTO) domcatalog.Catalog {
	var entries []domcatalog.Entry
	for _, e := range dto.Entries {
		entries = append(entries, domcatalog.Entry{
			Name:     e.Name,
			Category: e.Category,
			Efficacy: e.Efficacy,
			Price:    e.Price,
			Currency: e.Currency,
		})
	}
	return domcatalog.Reconstruct(dto.VenueName, entries)
}

// parseCatalog decodes a JSON.GET result. With the "$" path the payload
// is a one-element array wrapping the document.
func parseCatalog(raw []byte) (domcatalog.Catalog, error) {
	var dtos []catalogDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		var dto catalogDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return domcatalog.Catalog{}, fmt.Errorf("decode catalog: %w", err)
		}
		return fromDTO(dto), nil
	}
	if len(dtos) == 0 {
		return domcatalog.Catalog{}, fmt.Errorf("decode catalog: empty result")
	}
	return fromDTO(dtos[0]), nil
}
