// Package filter applies the budget and amenity constraints of a request to
// hotel listings.
package filter

import (
	"math"
	"strings"

	"github.com/baalimago/hotelagent/internal/search"
)

// NoMatchesMessage is the rendering of an empty Result.
const NoMatchesMessage = "No hotels found matching your criteria."

// Result holds the listings which survived filtering, in input order.
type Result struct {
	Listings []search.Listing
}

func (r Result) Empty() bool {
	return len(r.Listings) == 0
}

// String renders one listing per line, or NoMatchesMessage when empty.
func (r Result) String() string {
	if r.Empty() {
		return NoMatchesMessage
	}
	lines := make([]string, 0, len(r.Listings))
	for _, l := range r.Listings {
		lines = append(lines, l.String())
	}
	return strings.Join(lines, "\n")
}

// Filter keeps the listings within budget which mention every amenity. A nil
// budget keeps any price, an unknown price never fits a budget. Amenities are
// matched as case-insensitive substrings of the listing's amenity text.
func Filter(listings []search.Listing, budget *float64, amenities []string) Result {
	kept := make([]search.Listing, 0, len(listings))
	for _, l := range listings {
		if withinBudget(l, budget) && hasAmenities(l, amenities) {
			kept = append(kept, l)
		}
	}
	return Result{Listings: kept}
}

// Apply filters with the constraints of the request.
func Apply(listings []search.Listing, req search.Request) Result {
	return Filter(listings, req.Budget, req.Amenities)
}

func withinBudget(l search.Listing, budget *float64) bool {
	if budget == nil {
		return true
	}
	price := math.Inf(1)
	if l.Price != nil {
		price = *l.Price
	}
	return price <= *budget
}

func hasAmenities(l search.Listing, amenities []string) bool {
	text := strings.ToLower(l.AmenitiesText())
	for _, a := range amenities {
		if !strings.Contains(text, strings.ToLower(a)) {
			return false
		}
	}
	return true
}
