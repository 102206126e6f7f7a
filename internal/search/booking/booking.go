// Package booking queries the Booking.com API, as published on RapidAPI, for
// destinations and hotels.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/hotelagent/internal/search"
)

const (
	locationsPath = "/v1/hotels/locations"
	searchPath    = "/v1/hotels/search"
)

type Client struct {
	conf   Configurations
	apiKey string
	picker Picker
	client *http.Client
	now    func() time.Time
	debug  bool
}

func (c *Client) Name() string {
	return "booking"
}

// Find resolves the request location and searches it. Search is never attempted
// if the location could not be resolved.
func (c *Client) Find(ctx context.Context, req search.Request) ([]search.Listing, error) {
	dest, err := c.ResolveDestination(ctx, req.Location)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, req, dest)
}

// ResolveDestination looks up the location and picks one of the candidates.
// Returns search.ErrNotFound when the lookup yields nothing.
func (c *Client) ResolveDestination(ctx context.Context, name string) (search.Destination, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("locale", c.conf.Locale)

	var locs []location
	if err := c.get(ctx, "resolve destination", locationsPath, q, &locs); err != nil {
		return search.Destination{}, err
	}
	candidates := make([]search.Destination, 0, len(locs))
	for _, l := range locs {
		candidates = append(candidates, search.Destination{
			ID:    string(l.DestID),
			Type:  l.DestType,
			Label: l.Label,
		})
	}
	dest, ok := c.picker(candidates)
	if !ok {
		return search.Destination{}, fmt.Errorf("%w: '%v'", search.ErrNotFound, name)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("resolved '%v' to: %v\n", name, debug.IndentedJsonFmt(dest)))
	}
	return dest, nil
}

// UsesStayDates is true, the provider prices every hotel for the stay.
func (c *Client) UsesStayDates() bool {
	return true
}

// Search hotels at the destination, ordered ascending by price by the provider.
// The order is kept as is. Listing prices are per night.
func (c *Client) Search(ctx context.Context, req search.Request, dest search.Destination) ([]search.Listing, error) {
	req, _ = req.WithStayDates(c.now())
	nights := stayNights(req.Checkin, req.Checkout)
	q := url.Values{}
	q.Set("dest_id", dest.ID)
	q.Set("dest_type", dest.Type)
	q.Set("checkin_date", req.Checkin)
	q.Set("checkout_date", req.Checkout)
	q.Set("adults_number", strconv.Itoa(c.conf.Adults))
	q.Set("room_number", strconv.Itoa(c.conf.Rooms))
	q.Set("filter_by_currency", c.conf.Currency)
	q.Set("order_by", "price")
	q.Set("units", "metric")
	q.Set("locale", c.conf.Locale)

	var resp searchResponse
	if err := c.get(ctx, "search hotels", searchPath, q, &resp); err != nil {
		return nil, err
	}
	listings := make([]search.Listing, 0, len(resp.Result))
	for _, h := range resp.Result {
		name := strings.TrimSpace(h.HotelName)
		if name == "" {
			continue
		}
		listings = append(listings, search.Listing{
			Name:             name,
			Price:            h.pricePerNight(nights),
			Currency:         h.currency(c.conf.Currency),
			Address:          joinAddress(h.Address, h.City),
			Rating:           h.rating(),
			URL:              h.URL,
			FreeCancellation: bool(h.IsFreeCancellable),
			Amenities:        h.amenities(),
		})
	}
	return listings, nil
}

// stayNights between checkin and checkout, never less than one. Unparsable
// dates count as a single night.
func stayNights(checkin, checkout string) int {
	in, err := time.Parse(search.DateLayout, checkin)
	if err != nil {
		return 1
	}
	out, err := time.Parse(search.DateLayout, checkout)
	if err != nil {
		return 1
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

func joinAddress(address, city string) string {
	address = strings.TrimSpace(address)
	city = strings.TrimSpace(city)
	switch {
	case address == "":
		return city
	case city == "" || strings.Contains(address, city):
		return address
	}
	return address + ", " + city
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	u, err := url.Parse(strings.TrimSuffix(c.conf.URL, "/") + path)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.RawQuery = q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.conf.Host)
	req.Header.Set("Accept", "application/json")
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("booking %v: GET %v\n", op, u.String()))
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &search.ProviderError{Op: op, StatusCode: res.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %v response: %w", op, err)
	}
	return nil
}
