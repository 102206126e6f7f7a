package places

import (
	"fmt"
	"net/http"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const apiKeyEnv = "GOOGLE_API_KEY"

type Configurations struct {
	URL string `json:"url"`
	// MaxResults caps the amount of listings kept from the response.
	MaxResults int `json:"max_results"`
}

var Default = Configurations{
	URL:        "https://maps.googleapis.com/maps/api/place/textsearch/json",
	MaxResults: 5,
}

// New client from the configuration. The API key is read from GOOGLE_API_KEY,
// which is required.
func New(conf Configurations) (*Client, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	if conf.MaxResults <= 0 {
		conf.MaxResults = Default.MaxResults
	}
	return &Client{
		conf:   conf,
		apiKey: apiKey,
		client: &http.Client{},
		title:  cases.Title(language.Und),
		debug:  misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_PLACES")),
	}, nil
}
