package internal

import (
	"os"

	"github.com/baalimago/hotelagent/internal/search/booking"
	"github.com/baalimago/hotelagent/internal/search/extract"
	"github.com/baalimago/hotelagent/internal/search/places"
)

const (
	configFileName = "hotelagentConfig.json"

	SourceBooking = "booking"
	SourcePlaces  = "places"

	// TestModel selects the echo completer.
	TestModel = "test"

	fallbackDeployment = "gpt-4o"
)

// AppConfig is stored as hotelagentConfig.json in the config dir.
type AppConfig struct {
	// ChatModel is the chat deployment. Empty means AZURE_DEPLOYMENT_NAME.
	ChatModel string `json:"chat_model"`
	// EvalModel is the evaluation deployment. Empty means
	// AZURE_EVAL_DEPLOYMENT_NAME, and then the chat deployment.
	EvalModel string                 `json:"eval_model"`
	Extractor string                 `json:"extractor"`
	Source    string                 `json:"source"`
	NoEval    bool                   `json:"no_eval"`
	Booking   booking.Configurations `json:"booking"`
	Places    places.Configurations  `json:"places"`
}

var DefaultConfig = AppConfig{
	Extractor: extract.Pattern,
	Source:    SourceBooking,
	Booking:   booking.Default,
	Places:    places.Default,
}

func (c AppConfig) chatDeployment() string {
	if c.ChatModel != "" {
		return c.ChatModel
	}
	if d := os.Getenv("AZURE_DEPLOYMENT_NAME"); d != "" {
		return d
	}
	return fallbackDeployment
}

func (c AppConfig) evalDeployment() string {
	if c.EvalModel != "" {
		return c.EvalModel
	}
	if d := os.Getenv("AZURE_EVAL_DEPLOYMENT_NAME"); d != "" {
		return d
	}
	return c.chatDeployment()
}
