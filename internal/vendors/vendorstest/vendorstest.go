package vendorstest

import (
	"testing"

	"github.com/baalimago/hotelagent/internal/models"
)

// RunSetupTests runs common Setup tests for vendors. Every env var in envVars is
// set for the positive case, and all of them are cleared for the negative case.
func RunSetupTests(t *testing.T, envVars []string, requiresEnv bool, newVendor func() models.Completer) {
	t.Helper()

	t.Run("with_env", func(t *testing.T) {
		v := newVendor()
		for _, e := range envVars {
			t.Setenv(e, "some-key")
		}
		if err := v.Setup(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	if requiresEnv {
		t.Run("no_env", func(t *testing.T) {
			v := newVendor()
			for _, e := range envVars {
				t.Setenv(e, "")
			}
			if err := v.Setup(); err == nil {
				t.Fatalf("expected error when %v unset", envVars)
			}
		})
	}
}
