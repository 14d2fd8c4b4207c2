package venue

import (
	"encoding/json"
	"fmt"

	"github.com/glowgrid/spadex/internal/domain/geo"
	domvenue "github.com/glowgrid/spadex/internal/domain/venue"
)

// venueDTO is the JSON document stored under venue keys.
type venueDTO struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Neighborhood string         `json:"neighborhood,omitempty"`
	Address      string         `json:"address,omitempty"`
	Location     *locationDTO   `json:"location,omitempty"`
	Google       *ratingDTO     `json:"google,omitempty"`
	Yelp         *ratingDTO     `json:"yelp,omitempty"`
	FreeConsult  string         `json:"free_consultation,omitempty"`
	Treatments   []treatmentDTO `json:"treatments,omitempty"`
}

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ratingDTO struct {
	Stars   float64 `json:"stars"`
	Reviews int     `json:"reviews"`
}

type treatmentDTO struct {
	Name  string `json:"name"`
	Price string `json:"price,omitempty"`
}

func toDTO(v domvenue.Venue) venueDTO {
	dto := venueDTO{
		ID:           v.ID(),
		Name:         v.Name(),
		Neighborhood: v.Neighborhood(),
		Address:      v.Address(),
		FreeConsult:  v.FreeConsultation(),
	}
	if loc, ok := v.Location(); ok {
		dto.Location = &locationDTO{Lat: loc.Lat, Lng: loc.Lng}
	}
	if g, ok := v.Google(); ok {
		dto.Google = &ratingDTO{Stars: g.Stars, Reviews: g.Reviews}
	}
	if y, ok := v.Yelp(); ok {
		dto.Yelp = &ratingDTO{Stars: y.Stars, Reviews: y.Reviews}
	}
	for _, tr := range v.Treatments() {
		dto.Treatments = append(dto.Treatments, treatmentDTO{Name: tr.Name, Price: tr.Price})
	}
	return dto
}

func fromDTO(dto venueDTO) domvenue.Venue {
	var loc *geo.Point
	if dto.Location != nil {
		loc = &geo.Point{Lat: dto.Location.Lat, Lng: dto.Location.Lng}
	}
	var google, yelp *domvenue.Rating
	if dto.Google != nil {
		google = &domvenue.Rating{Stars: dto.Google.Stars, Reviews: dto.Google.Reviews}
	}
	if dto.Yelp != nil {
		yelp = &domvenue.Rating{Stars: dto.Yelp.Stars, Reviews: dto.Yelp.Reviews}
	}
	var treatments []domvenue.Treatment
	for _, tr := range dto.Treatments {
		treatments = append(treatments, domvenue.Treatment{Name: tr.Name, Price: tr.Price})
	}
	return domvenue.Reconstruct(
		dto.ID, dto.Name, dto.Neighborhood, dto.Address,
		loc, google, yelp, dto.FreeConsult, treatments,
	)
}

// parseVenue decodes a JSON.GET result. With the "$" path the payload is
// a one-element array wrapping the document.
func parseVenue(raw []byte) (domvenue.Venue, error) {
	var dtos []venueDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		var dto venueDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return domvenue.Venue{}, fmt.Errorf("decode venue: %w", err)
		}
		return fromDTO(dto), nil
	}
	if len(dtos) == 0 {
		return domvenue.Venue{}, fmt.Errorf("decode venue: empty result")
	}
	return fromDTO(dtos[0]), nil
}
