package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/hotelagent/internal/agent"
	"github.com/baalimago/hotelagent/internal/evaluate"
	"github.com/baalimago/hotelagent/internal/search"
	"github.com/baalimago/hotelagent/internal/utils"
)

type turn struct {
	agentID string
	query   string
}

type fakeDispatcher struct {
	turns []turn
	resp  agent.Response
	err   error
}

func (f *fakeDispatcher) Presets() agent.Presets {
	return agent.DefaultPresets()
}

func (f *fakeDispatcher) HandleTurn(ctx context.Context, agentID, query string) (agent.Response, error) {
	f.turns = append(f.turns, turn{agentID: agentID, query: query})
	resp := f.resp
	if resp.Answer == "" {
		resp.Answer = "echo: " + query
	}
	return resp, f.err
}

func runWith(t *testing.T, d *fakeDispatcher, input, fixedAgent string) (string, error) {
	t.Helper()
	var err error
	out := testboil.CaptureStdout(t, func(t *testing.T) {
		err = New(strings.NewReader(input), d, true, fixedAgent).Run(context.Background())
	})
	return out, err
}

func TestRun(t *testing.T) {
	t.Run("it should list agents and exit", func(t *testing.T) {
		out, err := runWith(t, &fakeDispatcher{}, "exit\n", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.AssertStringContains(t, out, "1: Case 1: Giving more than the required number of outputs.")
		testboil.AssertStringContains(t, out, "3: Case 3: Not giving updated outputs.")
		testboil.AssertStringContains(t, out, "Exiting... Goodbye!")
	})

	t.Run("it should reject invalid agents", func(t *testing.T) {
		d := &fakeDispatcher{}
		out, _ := runWith(t, d, "7\nexit\n", "")
		testboil.AssertStringContains(t, out, "Invalid choice. Please select a valid agent.")
		testboil.FailTestIfDiff(t, len(d.turns), 0)
	})

	t.Run("it should forward turns to selected agent", func(t *testing.T) {
		d := &fakeDispatcher{}
		out, err := runWith(t, d, "2\nhotels please\n\nexit\nexit\n", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.AssertStringContains(t, out, "Selected Agent: Case 2: Assuming location of the prompt.")
		testboil.AssertStringContains(t, out, "Agent: echo: hotels please")
		testboil.FailTestIfDiff(t, len(d.turns), 1)
		testboil.FailTestIfDiff(t, d.turns[0], turn{agentID: "2", query: "hotels please"})
		testboil.FailTestIfDiff(t, strings.Count(out, "Select an agent:"), 2)
	})

	t.Run("closed input is a user exit", func(t *testing.T) {
		_, err := runWith(t, &fakeDispatcher{}, "1\nhi\n", "")
		if !errors.Is(err, utils.ErrUserInitiatedExit) {
			t.Fatalf("expected ErrUserInitiatedExit, got: %v", err)
		}
	})

	t.Run("fixed agent skips selection", func(t *testing.T) {
		d := &fakeDispatcher{}
		out, err := runWith(t, d, "hi\nexit\n", "3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, strings.Contains(out, "Select an agent:"), false)
		testboil.FailTestIfDiff(t, d.turns[0].agentID, "3")
	})

	t.Run("unknown fixed agent fails", func(t *testing.T) {
		_, err := runWith(t, &fakeDispatcher{}, "", "9")
		if !errors.Is(err, agent.ErrUnknownAgent) {
			t.Fatalf("expected ErrUnknownAgent, got: %v", err)
		}
	})
}

func TestPrintResponse(t *testing.T) {
	t.Run("notes, answer and evaluation", func(t *testing.T) {
		d := &fakeDispatcher{resp: agent.Response{
			Answer:     "Here are some hotels in Paris:",
			Notes:      []string{"Searching for hotels in Paris ..."},
			Evaluation: &agent.Evaluation{Verdict: evaluate.Verdict("Valid")},
		}}
		out, _ := runWith(t, d, "hotels in Paris\nexit\n", "3")
		testboil.AssertStringContains(t, out, "Searching for hotels in Paris ...")
		testboil.AssertStringContains(t, out, "Agent: Here are some hotels in Paris:")
		testboil.AssertStringContains(t, out, "Evaluation: Valid")
	})

	t.Run("errors keep the loop going", func(t *testing.T) {
		d := &fakeDispatcher{err: search.ErrNotFound}
		out, err := runWith(t, d, "hotels in Atlantis\nhotels in Atlantis\nexit\n", "3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, strings.Count(out, "Error: could not find hotels in that location"), 2)
	})

	t.Run("errors carry the turn id", func(t *testing.T) {
		d := &fakeDispatcher{
			resp: agent.Response{TurnID: "3f2b9c4e"},
			err:  search.ErrNotFound,
		}
		out, _ := runWith(t, d, "hotels in Atlantis\nexit\n", "3")
		testboil.AssertStringContains(t, out, "Error: could not find hotels in that location (turn 3f2b9c4e)")
	})

	t.Run("labels are colored unless raw", func(t *testing.T) {
		d := &fakeDispatcher{resp: agent.Response{
			Evaluation: &agent.Evaluation{Verdict: evaluate.Verdict("Valid")},
		}}
		out := testboil.CaptureStdout(t, func(t *testing.T) {
			_ = New(strings.NewReader("hi\nexit\n"), d, false, "1").Run(context.Background())
		})
		testboil.AssertStringContains(t, out, ancli.ColoredMessage(ancli.CYAN, "You")+": ")
		testboil.AssertStringContains(t, out, ancli.ColoredMessage(ancli.BLUE, "Agent")+": echo: hi")
		testboil.AssertStringContains(t, out, ancli.ColoredMessage(ancli.MAGENTA, "Evaluation")+": Valid")
	})

	t.Run("provider errors show status", func(t *testing.T) {
		d := &fakeDispatcher{err: &search.ProviderError{Op: "search hotels", StatusCode: 429, Body: "quota"}}
		out, _ := runWith(t, d, "hotels in Paris\nexit\n", "3")
		testboil.AssertStringContains(t, out, "status 429: quota")
	})
}
