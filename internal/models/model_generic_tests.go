// This package contains tests intended to be used by the implementations of
// the Completer interface
package models

import (
	"context"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

// Completer_Test ensures that an implementation stops blocking once the context
// is cancelled.
func Completer_Test(t *testing.T, c Completer) {
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		c.Complete(ctx, CompletionRequest{
			Messages: []Message{{Role: "user", Content: "ping"}},
		})
	}, time.Second)
}
