package chi

import (
	"github.com/glowgrid/spadex/internal/domain/catalog"
	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/search/facets"
	"github.com/glowgrid/spadex/internal/domain/search/result"
	"github.com/glowgrid/spadex/internal/domain/venue"
	searchuc "github.com/glowgrid/spadex/internal/usecase/search"
	venueuc "github.com/glowgrid/spadex/internal/usecase/venue"
)

// errorCode is a machine-readable error class in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeVenueNotFound    errorCode = "venue_not_found"
	codeCatalogNotFound  errorCode = "catalog_not_found"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
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

type upsertVenueRequest struct {
	Name             string         `json:"name"`
	Neighborhood     string         `json:"neighborhood,omitempty"`
	Address          string         `json:"address,omitempty"`
	Location         *locationDTO   `json:"location,omitempty"`
	Google           *ratingDTO     `json:"google,omitempty"`
	Yelp             *ratingDTO     `json:"yelp,omitempty"`
	FreeConsultation string         `json:"free_consultation,omitempty"`
	Treatments       []treatmentDTO `json:"treatments,omitempty"`
}

type venueResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Neighborhood     string         `json:"neighborhood,omitempty"`
	Address          string         `json:"address,omitempty"`
	Location         *locationDTO   `json:"location,omitempty"`
	Google           *ratingDTO     `json:"google,omitempty"`
	Yelp             *ratingDTO     `json:"yelp,omitempty"`
	FreeConsultation string         `json:"free_consultation,omitempty"`
	Treatments       []treatmentDTO `json:"treatments,omitempty"`
}

type venueListResponse struct {
	Items []venueResponse `json:"items"`
	Total int             `json:"total"`
}

type catalogEntryDTO struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Efficacy string `json:"efficacy,omitempty"`
	Price    string `json:"price,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type upsertCatalogRequest struct {
	Entries []catalogEntryDTO `json:"entries"`
}

type catalogResponse struct {
	VenueName string            `json:"venue_name"`
	Entries   []catalogEntryDTO `json:"entries"`
}

type rangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// facetsDTO mirrors facets.Selection; malformed values are treated as
// unset by the domain builders rather than rejected here.
type facetsDTO struct {
	Price            *rangeDTO `json:"price,omitempty"`
	GoogleStars      []int     `json:"google_stars,omitempty"`
	YelpStars        []int     `json:"yelp_stars,omitempty"`
	MinGoogleReviews int       `json:"min_google_reviews,omitempty"`
	MinYelpReviews   int       `json:"min_yelp_reviews,omitempty"`
	Categories       []string  `json:"categories,omitempty"`
	Efficacies       []string  `json:"efficacies,omitempty"`
	Neighborhoods    []string  `json:"neighborhoods,omitempty"`
	MaxDistanceMiles float64   `json:"max_distance_miles,omitempty"`
	FreeConsultation *bool     `json:"free_consultation,omitempty"`
}

type searchRequest struct {
	Query    string       `json:"query,omitempty"`
	Location *locationDTO `json:"location,omitempty"`
	Facets   *facetsDTO   `json:"facets,omitempty"`
	Sort     string       `json:"sort,omitempty"`
	Limit    int          `json:"limit,omitempty"`
}

type highlightSegmentDTO struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

type searchResultItem struct {
	Venue          venueResponse         `json:"venue"`
	Score          float64               `json:"score"`
	DistanceMiles  *float64              `json:"distance_miles,omitempty"`
	NameHighlights []highlightSegmentDTO `json:"name_highlights,omitempty"`
}

type searchResponse struct {
	Items []searchResultItem `json:"items"`
	Total int                `json:"total"`
}

type facetOptionsResponse struct {
	Neighborhoods []string `json:"neighborhoods"`
	Categories    []string `json:"categories"`
	Efficacies    []string `json:"efficacies"`
	Sorts         []string `json:"sorts"`
}

func venueInputFromRequest(id string, req upsertVenueRequest) venueuc.Input {
	in := venueuc.Input{
		ID:           id,
		Name:         req.Name,
		Neighborhood: req.Neighborhood,
		Address:      req.Address,
		FreeConsult:  req.FreeConsultation,
	}
	if req.Location != nil {
		in.Location = &geo.Point{Lat: req.Location.Lat, Lng: req.Location.Lng}
	}
	if req.Google != nil {
		in.Google = &venue.Rating{Stars: req.Google.Stars, Reviews: req.Google.Reviews}
	}
	if req.Yelp != nil {
		in.Yelp = &venue.Rating{Stars: req.Yelp.Stars, Reviews: req.Yelp.Reviews}
	}
	for _, tr := range req.Treatments {
		in.Treatments = append(in.Treatments, venue.Treatment{Name: tr.Name, Price: tr.Price})
	}
	return in
}

func venueToResponse(v venue.Venue) venueResponse {
	resp := venueResponse{
		ID:               v.ID(),
		Name:             v.Name(),
		Neighborhood:     v.Neighborhood(),
		Address:          v.Address(),
		FreeConsultation: v.FreeConsultation(),
	}
	if loc, ok := v.Location(); ok {
		resp.Location = &locationDTO{Lat: loc.Lat, Lng: loc.Lng}
	}
	if g, ok := v.Google(); ok {
		resp.Google = &ratingDTO{Stars: g.Stars, Reviews: g.Reviews}
	}
	if y, ok := v.Yelp(); ok {
		resp.Yelp = &ratingDTO{Stars: y.Stars, Reviews: y.Reviews}
	}
	for _, tr := range v.Treatments() {
		resp.Treatments = append(resp.Treatments, treatmentDTO{Name: tr.Name, Price: tr.Price})
	}
	return resp
}

func entriesFromRequest(req upsertCatalogRequest) []catalog.Entry {
	entries := make([]catalog.Entry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, catalog.Entry{
			Name:     e.Name,
			Category: e.Category,
			Efficacy: e.Efficacy,
			Price:    e.Price,
			Currency: e.Currency,
		})
	}
	return entries
}

func catalogToResponse(c catalog.Catalog) catalogResponse {
	resp := catalogResponse{
		VenueName: c.VenueName(),
		Entries:   make([]catalogEntryDTO, 0, len(c.Entries())),
	}
	for _, e := range c.Entries() {
		resp.Entries = append(resp.Entries, catalogEntryDTO{
			Name:     e.Name,
			Category: e.Category,
			Efficacy: e.Efficacy,
			Price:    e.Price,
			Currency: e.Currency,
		})
	}
	return resp
}

func selectionFromDTO(f *facetsDTO) facets.Selection {
	sel := facets.NewSelection()
	if f == nil {
		return sel
	}
	if f.Price != nil {
		sel = sel.WithPriceRange(f.Price.Min, f.Price.Max)
	}
	sel = sel.WithGoogleStars(f.GoogleStars...)
	sel = sel.WithYelpStars(f.YelpStars...)
	sel = sel.WithMinGoogleReviews(f.MinGoogleReviews)
	sel = sel.WithMinYelpReviews(f.MinYelpReviews)
	sel = sel.WithCategories(f.Categories...)
	sel = sel.WithEfficacies(f.Efficacies...)
	sel = sel.WithNeighborhoods(f.Neighborhoods...)
	sel = sel.WithMaxDistance(f.MaxDistanceMiles)
	if f.FreeConsultation != nil {
		sel = sel.WithFreeConsultation(*f.FreeConsultation)
	}
	return sel
}

func searchResultToItem(r *result.Result) searchResultItem {
	item := searchResultItem{
		Venue: venueToResponse(r.Venue()),
		Score: r.Score(),
	}
	if d, ok := r.DistanceMiles(); ok {
		item.DistanceMiles = &d
	}
	for _, seg := range r.NameHighlights() {
		item.NameHighlights = append(item.NameHighlights, highlightSegmentDTO{
			Text:  seg.Text,
			Match: seg.Match,
		})
	}
	return item
}

func facetOptionsToResponse(o searchuc.Options) facetOptionsResponse {
	resp := facetOptionsResponse{
		Neighborhoods: o.Neighborhoods,
		Categories:    o.Categories,
		Efficacies:    o.Efficacies,
		Sorts:         make([]string, 0, len(o.Sorts)),
	}
	if resp.Neighborhoods == nil {
		resp.Neighborhoods = []string{}
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if resp.Efficacies == nil {
		resp.Efficacies = []string{}
	}
	for _, s := range o.Sorts {
		resp.Sorts = append(resp.Sorts, string(s))
	}
	return resp
}
