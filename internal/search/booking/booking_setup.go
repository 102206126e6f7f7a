package booking

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const apiKeyEnv = "RAPIDAPI_KEY"

type Configurations struct {
	URL      string `json:"url"`
	Host     string `json:"host"`
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
	Adults   int    `json:"adults"`
	Rooms    int    `json:"rooms"`
	// Resolve names the destination Picker, see PickerFor.
	Resolve string `json:"resolve"`
}

var Default = Configurations{
	URL:      "https://booking-com.p.rapidapi.com",
	Host:     "booking-com.p.rapidapi.com",
	Locale:   "en-gb",
	Currency: "USD",
	Adults:   2,
	Rooms:    1,
	Resolve:  CityFirst,
}

// New client from the configuration. The API key is read from RAPIDAPI_KEY,
// which is required.
func New(conf Configurations) (*Client, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	picker, err := PickerFor(conf.Resolve)
	if err != nil {
		return nil, err
	}
	return &Client{
		conf:   conf,
		apiKey: apiKey,
		picker: picker,
		client: &http.Client{},
		now:    time.Now,
		debug:  misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_BOOKING")),
	}, nil
}
