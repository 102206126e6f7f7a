package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/hotelagent/internal/search"
)

func TestPatternExtractor(t *testing.T) {
	testCases := []struct {
		desc          string
		given         string
		wantLocation  string
		wantBudget    *float64
		wantAmenities []string
	}{
		{
			desc:          "location and budget",
			given:         "Find me a hotel in Paris under $200",
			wantLocation:  "Paris",
			wantBudget:    ptr(200),
			wantAmenities: []string{},
		},
		{
			desc:          "multi word location and amenities",
			given:         "I want a hotel in New York with a spa and WiFi",
			wantLocation:  "New York",
			wantAmenities: []string{"spa", "wifi"},
		},
		{
			desc:         "budget without dollar sign",
			given:        "hotels in Rome under 90 please",
			wantLocation: "Rome",
			wantBudget:   ptr(90),
		},
		{
			desc:          "no location",
			given:         "Give me affordable hotels with a gym",
			wantLocation:  search.UnknownLocation,
			wantAmenities: []string{"gym"},
		},
		{
			desc:         "in inside a word is not a location",
			given:        "Find something nice",
			wantLocation: search.UnknownLocation,
		},
		{
			desc:         "location stops at punctuation",
			given:        "Staying in Lisbon, Portugal for a week",
			wantLocation: "Lisbon",
		},
		{
			desc:         "first non empty location wins",
			given:        "checking in on friday in Berlin",
			wantLocation: "Berlin",
		},
		{
			desc:          "amenities are deduplicated and lowercased",
			given:         "Beachfront hotel in Miami with an Infinity Pool, beachfront access and a restaurant",
			wantLocation:  "Miami",
			wantAmenities: []string{"beachfront", "infinity pool", "restaurant"},
		},
		{
			desc:         "budget with digit group commas",
			given:        "a suite in Dubai under $1,500",
			wantLocation: "Dubai",
			wantBudget:   ptr(1500),
		},
		{
			desc:         "budget with several digit groups",
			given:        "a villa in Monaco under 1,250,000 total",
			wantLocation: "Monaco",
			wantBudget:   ptr(1250000),
		},
		{
			desc:          "comma after budget ends it",
			given:         "hotels in Oslo under 300, with a gym",
			wantLocation:  "Oslo",
			wantBudget:    ptr(300),
			wantAmenities: []string{"gym"},
		},
		{
			desc:         "non ascii location",
			given:        "hotel in São Paulo under $120",
			wantLocation: "São Paulo",
			wantBudget:   ptr(120),
		},
		{
			desc:         "spa inside a word is not an amenity",
			given:        "a spacious room in Madrid",
			wantLocation: "Madrid",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := PatternExtractor{}.Extract(context.Background(), tc.given)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testboil.FailTestIfDiff(t, got.Location, tc.wantLocation)
			assertBudget(t, got.Budget, tc.wantBudget)
			if len(got.Amenities) != len(tc.wantAmenities) {
				t.Fatalf("expected amenities %v, got %v", tc.wantAmenities, got.Amenities)
			}
			for i := range tc.wantAmenities {
				testboil.FailTestIfDiff(t, got.Amenities[i], tc.wantAmenities[i])
			}
		})
	}
}

func TestPatternExtractorBudgetProperty(t *testing.T) {
	for _, n := range []int{0, 1, 42, 150, 200, 999, 12000} {
		t.Run(fmt.Sprintf("under_%v", n), func(t *testing.T) {
			got, _ := PatternExtractor{}.Extract(context.Background(), fmt.Sprintf("a room in Oslo under $%v", n))
			assertBudget(t, got.Budget, ptr(float64(n)))
		})
	}

	t.Run("absent without pattern", func(t *testing.T) {
		got, _ := PatternExtractor{}.Extract(context.Background(), "a room in Oslo for $200")
		if got.Budget != nil {
			t.Fatalf("expected absent budget, got: %v", *got.Budget)
		}
	})
}

func TestPatternExtractorLocationProperty(t *testing.T) {
	for _, loc := range []string{"Paris", "San Francisco", "Rio de Janeiro", "tokyo", "Zürich", "Kraków"} {
		t.Run(loc, func(t *testing.T) {
			got, _ := PatternExtractor{}.Extract(context.Background(), "hotel in   "+loc+"  ")
			testboil.FailTestIfDiff(t, got.Location, loc)
		})
	}
}

func assertBudget(t *testing.T, got, want *float64) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Fatalf("expected budget %v, got %v", fmtPtr(want), fmtPtr(got))
	case *got != *want:
		t.Fatalf("expected budget %v, got %v", *want, *got)
	}
}

func fmtPtr(f *float64) string {
	if f == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%v", *f)
}

func ptr(f float64) *float64 {
	return &f
}
