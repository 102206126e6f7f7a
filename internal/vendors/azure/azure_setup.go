package azure

import (
	"errors"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	openai "github.com/sashabaranov/go-openai"
)

// Setup the client from the environment. AZURE_OPENAI_API_KEY together with
// AZURE_OPENAI_ENDPOINT selects Azure, OPENAI_API_KEY alone selects OpenAI.
func (a *Azure) Setup() error {
	apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	endpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	var cfg openai.ClientConfig
	switch {
	case apiKey != "" && endpoint != "":
		if v := os.Getenv("AZURE_API_VERSION"); v != "" {
			a.APIVersion = v
		}
		if a.APIVersion == "" {
			a.APIVersion = DefaultAPIVersion
		}
		cfg = openai.DefaultAzureConfig(apiKey, endpoint)
		cfg.APIVersion = a.APIVersion
		// Deployment names are used verbatim, the default mapper strips dots.
		cfg.AzureModelMapperFunc = func(model string) string {
			return model
		}
		a.endpoint = endpoint
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg = openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
		if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
			cfg.BaseURL = v
		}
		a.endpoint = cfg.BaseURL
	default:
		return errors.New("environment variables 'AZURE_OPENAI_API_KEY' and 'AZURE_OPENAI_ENDPOINT' not set, neither is 'OPENAI_API_KEY'")
	}
	if a.HTTPClient != nil {
		cfg.HTTPClient = a.HTTPClient
	}
	a.client = openai.NewClientWithConfig(cfg)

	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_AZURE")) {
		a.debug = true
	}
	return nil
}
