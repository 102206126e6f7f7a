package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UnknownLocation is the location of a request where none could be extracted.
const UnknownLocation = "Unknown"

// ErrNotFound is returned when no destination could be resolved for a location.
var ErrNotFound = errors.New("could not find hotels in that location")

// Request describes what the user is looking for. It is created once per turn.
type Request struct {
	Location string `json:"location"`
	// Checkin and Checkout are YYYY-MM-DD, empty when not mentioned.
	Checkin  string `json:"checkin,omitempty"`
	Checkout string `json:"checkout,omitempty"`
	// Budget is the max price per night, nil when not mentioned.
	Budget    *float64 `json:"budget"`
	Amenities []string `json:"amenities"`
}

// HasLocation reports if a usable location is present.
func (r Request) HasLocation() bool {
	loc := strings.TrimSpace(r.Location)
	return loc != "" && !strings.EqualFold(loc, UnknownLocation)
}

// Validate the request invariants.
func (r Request) Validate() error {
	if r.Budget != nil && *r.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got: %v", *r.Budget)
	}
	return nil
}

// NormalizeAmenities lowercases, trims and deduplicates amenity tokens while
// keeping the order of first appearance. Empty tokens are dropped.
func NormalizeAmenities(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Destination is an opaque provider identifier for a resolved location.
type Destination struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Listing is one hotel candidate, normalized across sources. Not to be
// mutated once created.
type Listing struct {
	Name string `json:"name"`
	// Price per night, nil when the provider did not report one.
	Price            *float64 `json:"price"`
	Currency         string   `json:"currency,omitempty"`
	Address          string   `json:"address"`
	Rating           *float64 `json:"rating"`
	URL              string   `json:"url"`
	FreeCancellation bool     `json:"free_cancellation"`
	Amenities        []string `json:"amenities"`
}

// AmenitiesText is the provider reported amenities joined into one string.
func (l Listing) AmenitiesText() string {
	return strings.Join(l.Amenities, ", ")
}

// String is the display form of the listing, also used when handing listings
// to the evaluator.
func (l Listing) String() string {
	return fmt.Sprintf("%v - Price: %v - Address: %v - Rating: %v - Free cancellation: %v - %v",
		l.Name,
		formatPrice(l.Price, l.Currency),
		orUnknown(l.Address),
		formatNumber(l.Rating),
		yesNo(l.FreeCancellation),
		orUnknown(l.URL),
	)
}

func formatPrice(p *float64, currency string) string {
	if p == nil {
		return "unknown"
	}
	if currency == "" {
		return formatNumber(p)
	}
	return fmt.Sprintf("%v %v", formatNumber(p), currency)
}

func formatNumber(n *float64) string {
	if n == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// ProviderError is a non-success status from a hotel or location provider.
type ProviderError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%v: provider returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Source finds hotel listings for a request.
type Source interface {
	Name() string
	Find(ctx context.Context, req Request) ([]Listing, error)
}

// DatedSource is implemented by sources which search for a stay, so need
// check-in and check-out dates.
type DatedSource interface {
	UsesStayDates() bool
}

// UsesStayDates reports if src searches for specific stay dates.
func UsesStayDates(src Source) bool {
	ds, ok := src.(DatedSource)
	return ok && ds.UsesStayDates()
}

// DateLayout of check-in and check-out dates.
const DateLayout = "2006-01-02"

// WithStayDates fills missing check-in and check-out dates. A missing check-in
// becomes the day after now, or the day before check-out if that is known. A
// missing check-out becomes the day after check-in. The bool reports if
// anything was filled in.
func (r Request) WithStayDates(now time.Time) (Request, bool) {
	if r.Checkin != "" && r.Checkout != "" {
		return r, false
	}
	switch {
	case r.Checkin == "" && r.Checkout != "":
		out, err := time.Parse(DateLayout, r.Checkout)
		if err != nil {
			r.Checkin = now.AddDate(0, 0, 1).Format(DateLayout)
		} else {
			r.Checkin = out.AddDate(0, 0, -1).Format(DateLayout)
		}
	case r.Checkin == "":
		in := now.AddDate(0, 0, 1)
		r.Checkin = in.Format(DateLayout)
		r.Checkout = in.AddDate(0, 0, 1).Format(DateLayout)
	default:
		in, err := time.Parse(DateLayout, r.Checkin)
		if err != nil {
			in = now.AddDate(0, 0, 1)
		}
		r.Checkout = in.AddDate(0, 0, 1).Format(DateLayout)
	}
	return r, true
}
