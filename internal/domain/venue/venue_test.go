package venue

import (
	"reflect"
	"strings"
	"testing"

	"github.com/glowgrid/spadex/internal/domain/geo"
)

func TestNew_Valid(t *testing.T) {
	loc := &geo.Point{Lat: 40.7, Lng: -74.0}
	v, err := New("v1", "Glow Clinic", "Soho", "12 Greene St", loc,
		&Rating{Stars: 4.5, Reviews: 120}, nil, "Free consultation",
		[]Treatment{{Name: "Botox", Price: "$300"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID() != "v1" || v.Name() != "Glow Clinic" {
		t.Errorf("identity = %q/%q", v.ID(), v.Name())
	}
	if got, ok := v.Location(); !ok || got != *loc {
		t.Errorf("Location() = %v, %v", got, ok)
	}
	if g, ok := v.Google(); !ok || g.Stars != 4.5 || g.Reviews != 120 {
		t.Errorf("Google() = %+v, %v", g, ok)
	}
	if _, ok := v.Yelp(); ok {
		t.Error("Yelp() present for nil rating")
	}
	if !v.OffersFreeConsultation() {
		t.Error("OffersFreeConsultation() = false")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		display string
		errPart string
	}{
		{"empty id", "", "Spa", "ID is required"},
		{"bad id chars", "a b", "Spa", "alphanumeric"},
		{"long id", strings.Repeat("x", 257), "Spa", "too long"},
		{"empty name", "v1", "", "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.display, "", "", nil, nil, nil, "", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error = %q, want substring %q", err, tt.errPart)
			}
		})
	}
}

func TestNew_MalformedOptionalsDegradeToAbsent(t *testing.T) {
	v, err := New("v1", "Spa", "", "", &geo.Point{Lat: 91, Lng: 0},
		&Rating{Stars: 6, Reviews: 1}, &Rating{Stars: 4, Reviews: -1}, "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.Location(); ok {
		t.Error("invalid location should be dropped")
	}
	if _, ok := v.Google(); ok {
		t.Error("out-of-range stars should be dropped")
	}
	if _, ok := v.Yelp(); ok {
		t.Error("negative reviews should be dropped")
	}
}

func TestSearchFields(t *testing.T) {
	v, err := New("v1", "Glow Clinic", "Soho", "", nil, nil, nil, "",
		[]Treatment{{Name: "Botox", Price: "$300"}, {Name: "", Price: "$1"}, {Name: "Laser Peel"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Glow Clinic", "Soho", "Botox", "Laser Peel"}
	if got := v.SearchFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("SearchFields() = %v, want %v", got, want)
	}
}

func TestNew_CopiesTreatments(t *testing.T) {
	ts := []Treatment{{Name: "Botox", Price: "$300"}}
	v, err := New("v1", "Spa", "", "", nil, nil, nil, "", ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts[0].Name = "changed"
	if v.Treatments()[0].Name != "Botox" {
		t.Error("treatments not copied on construction")
	}
}
