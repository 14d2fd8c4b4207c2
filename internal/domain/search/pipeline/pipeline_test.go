package pipeline

import (
	"testing"

	"github.com/glowgrid/spadex/internal/domain/catalog"
	"github.com/glowgrid/spadex/internal/domain/geo"
	"github.com/glowgrid/spadex/internal/domain/search/facets"
	"github.com/glowgrid/spadex/internal/domain/search/query"
	"github.com/glowgrid/spadex/internal/domain/search/result"
	"github.com/glowgrid/spadex/internal/domain/search/sortby"
	"github.com/glowgrid/spadex/internal/domain/venue"
)

// mapCatalog is a test Catalog backed by a name-keyed map.
type mapCatalog map[string][]catalog.Entry

func (m mapCatalog) Lookup(name string) []catalog.Entry {
	return m[catalog.Key(name)]
}

func mustVenue(t *testing.T, id, name, hood string, loc *geo.Point, google, yelp *venue.Rating, consult string, ts []venue.Treatment) venue.Venue {
	t.Helper()
	v, err := venue.New(id, name, hood, "", loc, google, yelp, consult, ts)
	if err != nil {
		t.Fatalf("venue %s: %v", id, err)
	}
	return v
}

func ids(results []result.Result) []string {
	out := make([]string, len(results))
	for i := range results {
		out[i] = results[i].Venue().ID()
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func run(t *testing.T, venues []venue.Venue, rawQuery string, loc *geo.Point, sel facets.Selection, strategy sortby.Strategy, cat Catalog) []result.Result {
	t.Helper()
	if cat == nil {
		cat = mapCatalog{}
	}
	qc := query.New(rawQuery, loc)
	return Run(venues, &qc, sel, strategy, cat)
}

func TestRun_NoQueryNoFacetsNoSort_PassThrough(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "Alpha Spa", "", nil, nil, nil, "", nil),
		mustVenue(t, "b", "Beta Clinic", "", nil, nil, nil, "", nil),
		mustVenue(t, "c", "Gamma Lounge", "", nil, nil, nil, "", nil),
	}
	got := run(t, venues, "  ", nil, facets.NewSelection(), sortby.None, nil)
	if !equalIDs(ids(got), "a", "b", "c") {
		t.Errorf("order = %v, want a b c", ids(got))
	}
	for i := range got {
		if got[i].Score() != 0 {
			t.Errorf("score[%d] = %v, want 0", i, got[i].Score())
		}
		if got[i].Venue().Name() != venues[i].Name() {
			t.Errorf("venue[%d] changed", i)
		}
	}
}

func TestRun_QueryPrunesZeroScores(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "Botox Clinic", "", nil, nil, nil, "", nil),
		mustVenue(t, "b", "Best Botoxology", "", nil, nil, nil, "", nil),
		mustVenue(t, "c", "Facial Spa", "", nil, nil, nil, "", nil),
	}
	got := run(t, venues, "botox", nil, facets.NewSelection(), sortby.None, nil)
	if !equalIDs(ids(got), "a", "b") {
		t.Errorf("ids = %v, want a b", ids(got))
	}
	if got[0].Score() != 4 || got[1].Score() != 5 {
		t.Errorf("scores = %v, %v; want 4, 5", got[0].Score(), got[1].Score())
	}
}

func TestRun_StarFloorBuckets(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, &venue.Rating{Stars: 4.2, Reviews: 1}, nil, "", nil),
		mustVenue(t, "b", "B", "", nil, &venue.Rating{Stars: 3.9, Reviews: 1}, nil, "", nil),
		mustVenue(t, "c", "C", "", nil, &venue.Rating{Stars: 4.9, Reviews: 1}, nil, "", nil),
		mustVenue(t, "d", "D", "", nil, nil, nil, "", nil),
	}
	sel := facets.NewSelection().WithGoogleStars(4)
	got := run(t, venues, "", nil, sel, sortby.None, nil)
	if !equalIDs(ids(got), "a", "c") {
		t.Errorf("ids = %v, want a c (floor(4.2)=floor(4.9)=4)", ids(got))
	}
}

func TestRun_DistanceSortAscending(t *testing.T) {
	user := &geo.Point{Lat: 40.0, Lng: -74.0}
	// ~5.4mi and ~1.2mi north of the user.
	far := mustVenue(t, "far", "Far Spa", "", &geo.Point{Lat: 40.078, Lng: -74.0}, nil, nil, "", nil)
	near := mustVenue(t, "near", "Near Spa", "", &geo.Point{Lat: 40.017, Lng: -74.0}, nil, nil, "", nil)
	noGeo := mustVenue(t, "none", "Lost Spa", "", nil, nil, nil, "", nil)

	got := run(t, []venue.Venue{far, noGeo, near}, "", user, facets.NewSelection(), sortby.DistanceAsc, nil)
	if !equalIDs(ids(got), "near", "far", "none") {
		t.Errorf("ids = %v, want near far none", ids(got))
	}
	if d, ok := got[0].DistanceMiles(); !ok || d > 1.5 {
		t.Errorf("near distance = %v, %v", d, ok)
	}
	if _, ok := got[2].DistanceMiles(); ok {
		t.Error("venue without coordinates should have no distance")
	}
}

func TestRun_DistanceSortWithoutUserLocationIsNoOp(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", &geo.Point{Lat: 41, Lng: -74}, nil, nil, "", nil),
		mustVenue(t, "b", "B", "", &geo.Point{Lat: 40, Lng: -74}, nil, nil, "", nil),
	}
	got := run(t, venues, "", nil, facets.NewSelection(), sortby.DistanceAsc, nil)
	if !equalIDs(ids(got), "a", "b") {
		t.Errorf("ids = %v, want unchanged a b", ids(got))
	}
}

func TestRun_PriceSortMissingPriceLast(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, nil, nil, "", []venue.Treatment{{Name: "Botox", Price: "Contact for pricing"}}),
		mustVenue(t, "b", "B", "", nil, nil, nil, "", []venue.Treatment{{Name: "Botox Special", Price: "$120 per session"}}),
		mustVenue(t, "c", "C", "", nil, nil, nil, "", []venue.Treatment{{Name: "Botox Deluxe", Price: "$90"}}),
	}
	got := run(t, venues, "botox", nil, facets.NewSelection(), sortby.PriceAsc, nil)
	if !equalIDs(ids(got), "c", "b", "a") {
		t.Errorf("ids = %v, want c b a", ids(got))
	}
}

func TestRun_ConsultationFirstStablePartition(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, nil, nil, "", nil),
		mustVenue(t, "b", "B", "", nil, nil, nil, "Free consult", nil),
		mustVenue(t, "c", "C", "", nil, nil, nil, "", nil),
		mustVenue(t, "d", "D", "", nil, nil, nil, "Free consult", nil),
	}
	got := run(t, venues, "", nil, facets.NewSelection(), sortby.ConsultationFirst, nil)
	if !equalIDs(ids(got), "b", "d", "a", "c") {
		t.Errorf("ids = %v, want b d a c", ids(got))
	}
}

func TestRun_SortStability(t *testing.T) {
	// Equal ratings keep their relative pre-sort order.
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, &venue.Rating{Stars: 4.0, Reviews: 10}, nil, "", nil),
		mustVenue(t, "b", "B", "", nil, &venue.Rating{Stars: 4.0, Reviews: 20}, nil, "", nil),
		mustVenue(t, "c", "C", "", nil, &venue.Rating{Stars: 5.0, Reviews: 5}, nil, "", nil),
	}
	got := run(t, venues, "", nil, facets.NewSelection(), sortby.GoogleRatingDesc, nil)
	if !equalIDs(ids(got), "c", "a", "b") {
		t.Errorf("ids = %v, want c a b", ids(got))
	}
}

func TestRun_PriceRangeFacet(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "cheap", "A", "", nil, nil, nil, "", []venue.Treatment{{Name: "Peel Basic", Price: "$80"}}),
		mustVenue(t, "mid", "B", "", nil, nil, nil, "", []venue.Treatment{{Name: "Peel Plus", Price: "$150"}}),
		mustVenue(t, "nopx", "C", "", nil, nil, nil, "", []venue.Treatment{{Name: "Peel Royale", Price: "ask us"}}),
	}
	sel := facets.NewSelection().WithPriceRange(100, 200)
	got := run(t, venues, "peel", nil, sel, sortby.None, nil)
	if !equalIDs(ids(got), "mid") {
		t.Errorf("ids = %v, want mid (no price = excluded)", ids(got))
	}
}

func TestRun_PriceRangeFacetWithoutQueryExcludes(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, nil, nil, "", []venue.Treatment{{Name: "Peel", Price: "$80"}}),
	}
	sel := facets.NewSelection().WithPriceRange(0, 500)
	got := run(t, venues, "", nil, sel, sortby.None, nil)
	if len(got) != 0 {
		t.Errorf("price facet without a query has no price target, got %v", ids(got))
	}
}

func TestRun_DistanceFacetWithoutUserLocationExcludes(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", &geo.Point{Lat: 40, Lng: -74}, nil, nil, "", nil),
	}
	sel := facets.NewSelection().WithMaxDistance(5)
	got := run(t, venues, "", nil, sel, sortby.None, nil)
	if len(got) != 0 {
		t.Errorf("active radius without user location must exclude, got %v", ids(got))
	}
}

func TestRun_DistanceFacetFiltersByRadius(t *testing.T) {
	user := &geo.Point{Lat: 40.0, Lng: -74.0}
	venues := []venue.Venue{
		mustVenue(t, "near", "A", "", &geo.Point{Lat: 40.017, Lng: -74.0}, nil, nil, "", nil),
		mustVenue(t, "far", "B", "", &geo.Point{Lat: 40.5, Lng: -74.0}, nil, nil, "", nil),
		mustVenue(t, "none", "C", "", nil, nil, nil, "", nil),
	}
	sel := facets.NewSelection().WithMaxDistance(5)
	got := run(t, venues, "", user, sel, sortby.None, nil)
	if !equalIDs(ids(got), "near") {
		t.Errorf("ids = %v, want near", ids(got))
	}
}

func TestRun_CategoryFacetViaCatalog(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "Glow Clinic", "", nil, nil, nil, "", nil),
		mustVenue(t, "b", "Calm Spa", "", nil, nil, nil, "", nil),
	}
	cat := mapCatalog{
		"glow clinic": {{Name: "Botox", Category: "Injectable", Efficacy: "wrinkle"}},
		"calm spa":    {{Name: "Massage", Category: "Bodywork", Efficacy: "relaxation"}},
	}
	sel := facets.NewSelection().WithCategories("injectable")
	got := run(t, venues, "", nil, sel, sortby.None, cat)
	if !equalIDs(ids(got), "a") {
		t.Errorf("ids = %v, want a", ids(got))
	}
}

func TestRun_NeighborhoodFacet(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "Soho", nil, nil, nil, "", nil),
		mustVenue(t, "b", "B", "Chelsea", nil, nil, nil, "", nil),
	}
	sel := facets.NewSelection().WithNeighborhoods("soho", "tribeca")
	got := run(t, venues, "", nil, sel, sortby.None, nil)
	if !equalIDs(ids(got), "a") {
		t.Errorf("ids = %v, want a", ids(got))
	}
}

func TestRun_ReviewCountThreshold(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, &venue.Rating{Stars: 4, Reviews: 50}, nil, "", nil),
		mustVenue(t, "b", "B", "", nil, &venue.Rating{Stars: 4, Reviews: 5}, nil, "", nil),
		mustVenue(t, "c", "C", "", nil, nil, nil, "", nil),
	}
	sel := facets.NewSelection().WithMinGoogleReviews(10)
	got := run(t, venues, "", nil, sel, sortby.None, nil)
	if !equalIDs(ids(got), "a") {
		t.Errorf("ids = %v, want a", ids(got))
	}
}

func TestRun_FreeConsultationFacet(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "", nil, nil, nil, "Free consult", nil),
		mustVenue(t, "b", "B", "", nil, nil, nil, "", nil),
	}
	must := facets.NewSelection().WithFreeConsultation(true)
	if got := run(t, venues, "", nil, must, sortby.None, nil); !equalIDs(ids(got), "a") {
		t.Errorf("required: ids = %v, want a", ids(got))
	}
	not := facets.NewSelection().WithFreeConsultation(false)
	if got := run(t, venues, "", nil, not, sortby.None, nil); !equalIDs(ids(got), "b") {
		t.Errorf("forbidden: ids = %v, want b", ids(got))
	}
}

func TestRun_FilterComposability(t *testing.T) {
	// Applying disjoint facets sequentially equals applying their union.
	venues := []venue.Venue{
		mustVenue(t, "a", "A", "Soho", nil, &venue.Rating{Stars: 4.5, Reviews: 30}, nil, "", nil),
		mustVenue(t, "b", "B", "Soho", nil, &venue.Rating{Stars: 3.5, Reviews: 30}, nil, "", nil),
		mustVenue(t, "c", "C", "Chelsea", nil, &venue.Rating{Stars: 4.5, Reviews: 30}, nil, "", nil),
	}
	f1 := facets.NewSelection().WithNeighborhoods("Soho")
	f2 := facets.NewSelection().WithGoogleStars(4)
	union := facets.NewSelection().WithNeighborhoods("Soho").WithGoogleStars(4)

	step1 := run(t, venues, "", nil, f1, sortby.None, nil)
	step1Venues := make([]venue.Venue, len(step1))
	for i := range step1 {
		step1Venues[i] = step1[i].Venue()
	}
	sequential := run(t, step1Venues, "", nil, f2, sortby.None, nil)
	combined := run(t, venues, "", nil, union, sortby.None, nil)

	if !equalIDs(ids(sequential), ids(combined)...) {
		t.Errorf("sequential %v != combined %v", ids(sequential), ids(combined))
	}
	if !equalIDs(ids(combined), "a") {
		t.Errorf("combined = %v, want a", ids(combined))
	}
}

func TestRun_HighlightsOnResults(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "Botox Clinic", "", nil, nil, nil, "", nil),
	}
	got := run(t, venues, "botox", nil, facets.NewSelection(), sortby.None, nil)
	segs := got[0].NameHighlights()
	if len(segs) != 2 || !segs[0].Match || segs[0].Text != "Botox" {
		t.Errorf("highlights = %v", segs)
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	venues := []venue.Venue{
		mustVenue(t, "a", "Botox Clinic", "Soho", nil, &venue.Rating{Stars: 4, Reviews: 10}, nil, "", nil),
		mustVenue(t, "b", "Facial Spa", "Chelsea", nil, nil, nil, "", nil),
	}
	before := []string{venues[0].Name(), venues[1].Name()}
	_ = run(t, venues, "botox", nil, facets.NewSelection().WithGoogleStars(4), sortby.GoogleRatingDesc, nil)
	if venues[0].Name() != before[0] || venues[1].Name() != before[1] {
		t.Error("input venues mutated")
	}
	if venues[0].ID() != "a" || venues[1].ID() != "b" {
		t.Error("input order mutated")
	}
}
