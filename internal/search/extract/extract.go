// Package extract turns a free-text query into a search.Request.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/baalimago/hotelagent/internal/models"
	"github.com/baalimago/hotelagent/internal/search"
)

const (
	Pattern = "pattern"
	Model   = "model"
)

// ErrNoLocation is wrapped by Error when no location could be determined.
var ErrNoLocation = errors.New("no location could be determined")

// Extractor derives structured search parameters from a query. Implementations
// never retry.
type Extractor interface {
	Extract(ctx context.Context, query string) (search.Request, error)
}

// Error is an extraction failure. Raw holds the text which could not be turned
// into a request.
type Error struct {
	Raw string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to extract search parameters: %v, raw: %q", e.Err, e.Raw)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns the extractor named by kind. The completer and deployment are only
// used by the model based extractor.
func New(kind string, c models.Completer, deployment string) (Extractor, error) {
	switch kind {
	case Pattern, "":
		return PatternExtractor{}, nil
	case Model:
		if c == nil {
			return nil, errors.New("model extractor requires a completer")
		}
		return NewModelExtractor(c, deployment), nil
	default:
		return nil, fmt.Errorf("unknown extractor: '%v', expected one of: [%v, %v]", kind, Pattern, Model)
	}
}
