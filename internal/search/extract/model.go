package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hotelagent/internal/models"
	"github.com/baalimago/hotelagent/internal/search"
)

const (
	extractTemperature = 0.1
	extractMaxTokens   = 300
)

const extractSystemPrompt = `You extract hotel search parameters from a user query.
Respond ONLY with a single JSON object, no explanations, with exactly these keys:
{"location": string, "checkin": "YYYY-MM-DD" or null, "checkout": "YYYY-MM-DD" or null, "budget": number or null, "amenities": [string]}

Rules:
- "location" is the city or region the user wants to stay in.
- "budget" is the maximum price per night as a number, null when not mentioned.
- "checkin" and "checkout" are null when not mentioned.
- "amenities" lists requested hotel features in lowercase, empty when none.
- Never guess values which the user did not mention.`

// ModelExtractor asks a language model to emit the parameters as strict JSON.
type ModelExtractor struct {
	completer  models.Completer
	deployment string
	debug      bool
}

func NewModelExtractor(c models.Completer, deployment string) *ModelExtractor {
	return &ModelExtractor{
		completer:  c,
		deployment: deployment,
		debug:      misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_EXTRACT")),
	}
}

type modelOutput struct {
	Location  *string  `json:"location"`
	Checkin   *string  `json:"checkin"`
	Checkout  *string  `json:"checkout"`
	Budget    *float64 `json:"budget"`
	Amenities []string `json:"amenities"`
}

func (m *ModelExtractor) Extract(ctx context.Context, query string) (search.Request, error) {
	raw, err := m.completer.Complete(ctx, models.CompletionRequest{
		Deployment:  m.deployment,
		Temperature: extractTemperature,
		MaxTokens:   extractMaxTokens,
		Messages: []models.Message{
			{Role: "system", Content: extractSystemPrompt},
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return search.Request{}, fmt.Errorf("failed to complete extraction: %w", err)
	}
	if m.debug {
		ancli.PrintOK(fmt.Sprintf("extraction raw output: %v\n", raw))
	}
	req, err := ParseModelOutput(raw)
	if err != nil {
		return search.Request{}, err
	}
	if m.debug {
		ancli.PrintOK(fmt.Sprintf("extracted request: %v\n", debug.IndentedJsonFmt(req)))
	}
	return req, nil
}

// ParseModelOutput normalizes the raw model text with StripCodeFence and decodes
// it. Any failure is returned as an *Error holding the raw text.
func ParseModelOutput(raw string) (search.Request, error) {
	var out modelOutput
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &out); err != nil {
		return search.Request{}, &Error{Raw: raw, Err: fmt.Errorf("failed to decode JSON: %w", err)}
	}
	req := search.Request{
		Location:  deref(out.Location),
		Checkin:   deref(out.Checkin),
		Checkout:  deref(out.Checkout),
		Budget:    out.Budget,
		Amenities: search.NormalizeAmenities(out.Amenities),
	}
	if !req.HasLocation() {
		return search.Request{}, &Error{Raw: raw, Err: ErrNoLocation}
	}
	if err := req.Validate(); err != nil {
		return search.Request{}, &Error{Raw: raw, Err: err}
	}
	return req, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
