// Package repl is the interactive prompt. It selects an agent, then forwards
// each line to the dispatcher until the user types exit.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/hotelagent/internal/agent"
	"github.com/baalimago/hotelagent/internal/search"
	"github.com/baalimago/hotelagent/internal/utils"
)

const exitWord = "exit"

type Dispatcher interface {
	Presets() agent.Presets
	HandleTurn(ctx context.Context, agentID, query string) (agent.Response, error)
}

type REPL struct {
	in  *bufio.Reader
	d   Dispatcher
	raw bool
	// fixedAgent skips the agent selection when set.
	fixedAgent string
}

func New(in io.Reader, d Dispatcher, raw bool, fixedAgent string) *REPL {
	return &REPL{
		in:         bufio.NewReader(in),
		d:          d,
		raw:        raw,
		fixedAgent: fixedAgent,
	}
}

// Run until the user exits. Returns utils.ErrUserInitiatedExit if the input
// was closed or the context cancelled.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Printf("Multi-agent hotel assistant (type '%v' to quit)\n", exitWord)
	for {
		preset, err := r.selectAgent(ctx)
		if err != nil {
			return err
		}
		if preset == nil {
			fmt.Println("Exiting... Goodbye!")
			return nil
		}
		fmt.Printf("\nSelected Agent: %v\n", preset.Description)
		if err := r.converse(ctx, *preset); err != nil {
			return err
		}
		if r.fixedAgent != "" {
			fmt.Println("Exiting... Goodbye!")
			return nil
		}
	}
}

// selectAgent returns nil if the user wants to exit.
func (r *REPL) selectAgent(ctx context.Context) (*agent.Preset, error) {
	presets := r.d.Presets()
	if r.fixedAgent != "" {
		p, err := presets.Get(r.fixedAgent)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}
	for {
		fmt.Println("\nSelect an agent:")
		for _, p := range presets {
			fmt.Printf("%v: %v\n", p.ID, p.Description)
		}
		fmt.Print("\nEnter agent number: ")
		choice, err := utils.ReadUserInput(ctx, r.in)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(choice, exitWord) {
			return nil, nil
		}
		p, err := presets.Get(choice)
		if err != nil {
			fmt.Println("Invalid choice. Please select a valid agent.")
			continue
		}
		return &p, nil
	}
}

// converse until the user types exit.
func (r *REPL) converse(ctx context.Context, preset agent.Preset) error {
	for {
		you := "You"
		if !r.raw {
			you = ancli.ColoredMessage(ancli.CYAN, you)
		}
		fmt.Printf("\n%v: ", you)
		query, err := utils.ReadUserInput(ctx, r.in)
		if err != nil {
			return err
		}
		if strings.EqualFold(query, exitWord) {
			return nil
		}
		if query == "" {
			continue
		}
		resp, err := r.d.HandleTurn(ctx, preset.ID, query)
		r.printResponse(resp, err)
	}
}

func (r *REPL) printResponse(resp agent.Response, err error) {
	for _, n := range resp.Notes {
		fmt.Println(n)
	}
	if err != nil {
		if resp.TurnID != "" {
			fmt.Printf("\nError: %v (turn %v)\n", describe(err), resp.TurnID)
		} else {
			fmt.Printf("\nError: %v\n", describe(err))
		}
		return
	}
	agentLabel, evalLabel := "Agent", "Evaluation"
	if !r.raw {
		agentLabel = ancli.ColoredMessage(ancli.BLUE, agentLabel)
		evalLabel = ancli.ColoredMessage(ancli.MAGENTA, evalLabel)
	}
	fmt.Printf("\n%v: %v\n", agentLabel, resp.Answer)
	if resp.Evaluation != nil {
		fmt.Printf("%v: %v\n", evalLabel, resp.Evaluation)
	}
}

func describe(err error) string {
	var pErr *search.ProviderError
	switch {
	case errors.Is(err, search.ErrNotFound):
		return search.ErrNotFound.Error()
	case errors.As(err, &pErr):
		return fmt.Sprintf("hotel provider failed during %v with status %d: %v", pErr.Op, pErr.StatusCode, pErr.Body)
	}
	return err.Error()
}
