// Package evaluate grades an agent answer with a second completion. The
// verdict is advisory, it is shown next to the answer and never replaces it.
package evaluate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hotelagent/internal/models"
)

const (
	// ValidVerdict is the full verdict of an answer without issues.
	ValidVerdict = "Valid"

	evalTemperature = 0.2
	evalMaxTokens   = 200
)

const systemPrompt = `You review answers given by a travel assistant. You never answer the user yourself.
Check that the answer:
- returns exactly as many results as the user asked for,
- does not assume a location, date, budget or preference which the user did not state, and asks for it instead when it is needed,
- uses the details the user did state,
- is relevant and up to date for the query.
If the answer has no issues, reply with the single word Valid and nothing else.
Otherwise reply with one or two sentences explaining what is wrong.`

// Verdict is the trimmed evaluator reply.
type Verdict string

func (v Verdict) Valid() bool {
	return string(v) == ValidVerdict
}

// Text adapts a plain answer for Evaluate.
type Text string

func (t Text) String() string {
	return string(t)
}

// Error is returned when the evaluation could not be performed.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("evaluation unavailable: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Evaluator struct {
	completer  models.Completer
	deployment string
	debug      bool
}

// New evaluator which sends its completions to deployment.
func New(completer models.Completer, deployment string) *Evaluator {
	return &Evaluator{
		completer:  completer,
		deployment: deployment,
		debug:      misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_EVAL")),
	}
}

// Prompt is the user message sent to the evaluator.
func Prompt(query string, output fmt.Stringer, agentID string) string {
	return fmt.Sprintf("Agent: %v\n\nUser query:\n%v\n\nAgent answer:\n%v", agentID, query, output.String())
}

// Evaluate the output the agent produced for query. Exactly one completion is
// made, it is never retried.
func (e *Evaluator) Evaluate(ctx context.Context, query string, output fmt.Stringer, agentID string) (Verdict, error) {
	req := models.CompletionRequest{
		Deployment: e.deployment,
		Messages: []models.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: Prompt(query, output, agentID)},
		},
		Temperature: evalTemperature,
		MaxTokens:   evalMaxTokens,
	}
	if e.debug {
		ancli.PrintOK(fmt.Sprintf("evaluation request: %v\n", debug.IndentedJsonFmt(req)))
	}
	raw, err := e.completer.Complete(ctx, req)
	if err != nil {
		return "", &Error{Err: err}
	}
	v := Verdict(strings.TrimSpace(raw))
	if v == "" {
		return "", &Error{Err: fmt.Errorf("empty verdict")}
	}
	return v, nil
}
