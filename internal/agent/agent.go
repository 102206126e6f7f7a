// Package agent answers one user turn with the selected preset: either a plain
// chat completion, or the hotel search pipeline for pipeline presets.
package agent

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hotelagent/internal/evaluate"
	"github.com/baalimago/hotelagent/internal/models"
	"github.com/baalimago/hotelagent/internal/search"
	"github.com/baalimago/hotelagent/internal/search/extract"
	"github.com/baalimago/hotelagent/internal/search/filter"
	"github.com/google/uuid"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

// Evaluation is the advisory annotation of a turn. Err is set when the
// evaluation was attempted but is unavailable.
type Evaluation struct {
	Verdict evaluate.Verdict
	Err     error
}

func (e Evaluation) String() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Verdict)
}

type Response struct {
	TurnID  string
	AgentID string
	// Answer is the primary answer of the turn, ready for display.
	Answer string
	// Notes are informational lines shown before the answer, such as
	// defaulted stay dates.
	Notes []string
	// Request is set for pipeline turns which got past extraction.
	Request *search.Request
	// Result is set for pipeline turns which got past the search.
	Result *filter.Result
	// Evaluation is nil when evaluation is disabled or was not attempted.
	Evaluation *Evaluation
}

// Dispatcher routes turns to the presets. The evaluator is optional.
type Dispatcher struct {
	presets    Presets
	completer  models.Completer
	deployment string
	extractor  extract.Extractor
	source     search.Source
	evaluator  *evaluate.Evaluator
	now        func() time.Time
	debug      bool
}

func NewDispatcher(
	presets Presets,
	completer models.Completer,
	deployment string,
	extractor extract.Extractor,
	source search.Source,
	evaluator *evaluate.Evaluator,
) *Dispatcher {
	return &Dispatcher{
		presets:    presets,
		completer:  completer,
		deployment: deployment,
		extractor:  extractor,
		source:     source,
		evaluator:  evaluator,
		now:        time.Now,
		debug:      misc.Truthy(os.Getenv("DEBUG")),
	}
}

func (d *Dispatcher) Presets() Presets {
	return d.presets
}

// HandleTurn answers query with the agent agentID. Chat failures are rendered
// into the answer. Pipeline failures are returned as errors together with the
// response built so far, so that its notes may still be shown. Evaluation
// never changes the answer.
func (d *Dispatcher) HandleTurn(ctx context.Context, agentID, query string) (Response, error) {
	preset, err := d.presets.Get(agentID)
	if err != nil {
		return Response{}, err
	}
	resp := Response{
		TurnID:  uuid.NewString(),
		AgentID: preset.ID,
	}
	if preset.Pipeline {
		if err := d.searchHotels(ctx, query, &resp); err != nil {
			return resp, err
		}
		d.annotate(ctx, query, *resp.Result, &resp)
		return resp, nil
	}

	answer, err := d.chat(ctx, preset, query, resp.TurnID)
	if err != nil {
		resp.Answer = fmt.Sprintf("Error: %v", err)
		return resp, nil
	}
	resp.Answer = answer
	d.annotate(ctx, query, evaluate.Text(answer), &resp)
	return resp, nil
}

func (d *Dispatcher) chat(ctx context.Context, preset Preset, query, turnID string) (string, error) {
	chat := models.NewChat(turnID, preset.SystemMessage, query)
	req := models.CompletionRequest{
		Deployment:  d.deployment,
		Messages:    chat.Messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	}
	if d.debug {
		ancli.PrintOK(fmt.Sprintf("turn %v chat request: %v\n", turnID, debug.IndentedJsonFmt(req)))
	}
	return d.completer.Complete(ctx, req)
}

// searchHotels runs extraction, search and filtering, in that order. Each step
// only runs if the previous one succeeded. Stay dates are only defaulted for
// sources which search by date.
func (d *Dispatcher) searchHotels(ctx context.Context, query string, resp *Response) error {
	req, err := d.extractor.Extract(ctx, query)
	if err != nil {
		return err
	}
	// The pattern extractor yields UnknownLocation instead of failing
	if !req.HasLocation() {
		return &extract.Error{Raw: query, Err: extract.ErrNoLocation}
	}
	if err := req.Validate(); err != nil {
		return &extract.Error{Raw: query, Err: err}
	}
	req.Amenities = search.NormalizeAmenities(req.Amenities)
	if search.UsesStayDates(d.source) {
		var filled bool
		req, filled = req.WithStayDates(d.now())
		if filled {
			resp.Notes = append(resp.Notes, fmt.Sprintf("No stay dates given, searching check-in %v to check-out %v.", req.Checkin, req.Checkout))
		}
	}
	if d.debug {
		ancli.PrintOK(fmt.Sprintf("turn %v search request: %v\n", resp.TurnID, debug.IndentedJsonFmt(req)))
	}
	resp.Request = &req
	resp.Notes = append(resp.Notes, fmt.Sprintf("Searching for hotels in %v ...", req.Location))

	listings, err := d.source.Find(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to find hotels with %v: %w", d.source.Name(), err)
	}
	res := filter.Apply(listings, req)
	if d.debug {
		ancli.PrintOK(fmt.Sprintf("turn %v: %v of %v listings from %v kept\n", resp.TurnID, len(res.Listings), len(listings), d.source.Name()))
	}
	resp.Result = &res
	if res.Empty() {
		resp.Answer = res.String()
	} else {
		resp.Answer = fmt.Sprintf("Here are some hotels in %v:\n%v", req.Location, res.String())
	}
	return nil
}

func (d *Dispatcher) annotate(ctx context.Context, query string, output fmt.Stringer, resp *Response) {
	if d.evaluator == nil {
		return
	}
	v, err := d.evaluator.Evaluate(ctx, query, output, resp.AgentID)
	if err != nil {
		resp.Evaluation = &Evaluation{Err: err}
	} else {
		resp.Evaluation = &Evaluation{Verdict: v}
	}
	if d.debug {
		ancli.PrintOK(fmt.Sprintf("turn %v evaluation: %v\n", resp.TurnID, resp.Evaluation))
	}
}
