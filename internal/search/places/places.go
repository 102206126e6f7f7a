// Package places discovers hotels with the Google Places text search. The
// provider reports no prices, so every listing has an unknown price.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/hotelagent/internal/search"
	"golang.org/x/text/cases"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	mapsPlaceURL      = "https://www.google.com/maps/place/?q=place_id:"
)

type Client struct {
	conf   Configurations
	apiKey string
	client *http.Client
	title  cases.Caser
	debug  bool
}

type textSearchResponse struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
	Results      []result `json:"results"`
}

type result struct {
	Name             string   `json:"name"`
	PlaceID          string   `json:"place_id"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
}

func (c *Client) Name() string {
	return "places"
}

// Query builds the text search query: "hotels in <City>", followed by
// " with a, b" when amenities are requested.
func (c *Client) Query(location string, amenities []string) string {
	q := "hotels in " + c.title.String(strings.TrimSpace(location))
	if len(amenities) > 0 {
		q += " with " + strings.Join(amenities, ", ")
	}
	return q
}

// Find runs one text search. Zero results is not an error, any other non OK
// status is reported as a search.ProviderError.
func (c *Client) Find(ctx context.Context, req search.Request) ([]search.Listing, error) {
	q := url.Values{}
	q.Set("query", c.Query(req.Location, req.Amenities))
	q.Set("key", c.apiKey)
	u, err := url.Parse(c.conf.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid places URL: %w", err)
	}
	u.RawQuery = q.Encode()
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("places text search, query: '%v'\n", q.Get("query")))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, &search.ProviderError{Op: "text search", StatusCode: res.StatusCode, Body: string(body)}
	}

	var resp textSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode text search response: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("places response: %v\n", debug.IndentedJsonFmt(resp)))
	}
	switch resp.Status {
	case statusOK:
	case statusZeroResults:
		return []search.Listing{}, nil
	default:
		return nil, &search.ProviderError{
			Op:         "text search",
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(resp.Status + " " + resp.ErrorMessage),
		}
	}

	results := resp.Results
	if len(results) > c.conf.MaxResults {
		results = results[:c.conf.MaxResults]
	}
	listings := make([]search.Listing, 0, len(results))
	for _, r := range results {
		l := search.Listing{
			Name:    strings.TrimSpace(r.Name),
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			// The query asked for the amenities, so the provider has matched them.
			Amenities: req.Amenities,
		}
		if l.Name == "" {
			l.Name = "Unknown Hotel"
		}
		if r.PlaceID != "" {
			l.URL = mapsPlaceURL + r.PlaceID
		}
		listings = append(listings, l)
	}
	return listings, nil
}
