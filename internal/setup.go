package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/hotelagent/internal/agent"
	"github.com/baalimago/hotelagent/internal/evaluate"
	"github.com/baalimago/hotelagent/internal/models"
	"github.com/baalimago/hotelagent/internal/repl"
	"github.com/baalimago/hotelagent/internal/search"
	"github.com/baalimago/hotelagent/internal/search/booking"
	"github.com/baalimago/hotelagent/internal/search/extract"
	"github.com/baalimago/hotelagent/internal/search/places"
	"github.com/baalimago/hotelagent/internal/utils"
	"github.com/baalimago/hotelagent/internal/vendors"
	"github.com/baalimago/hotelagent/internal/vendors/azure"
	"golang.org/x/term"
)

type Mode int

const (
	HELP Mode = iota
	RUN
	VERSION
)

// Runner is what Setup hands back to main.
type Runner interface {
	Run(ctx context.Context) error
}

func getModeFromArgs(args []string) (Mode, error) {
	if len(args) == 0 {
		return RUN, nil
	}
	switch args[0] {
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", args[0])
	}
}

// Setup parses args, loads the configuration and constructs the REPL. Help and
// version are printed here, and return utils.ErrUserInitiatedExit.
func Setup(ctx context.Context, usage string, args []string) (Runner, error) {
	flagSet, postArgs, err := parseFlags(defaultFlags, args)
	if err != nil {
		return nil, err
	}
	mode, err := getModeFromArgs(postArgs)
	if err != nil {
		return nil, err
	}
	switch mode {
	case HELP:
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	case VERSION:
		return nil, printVersion()
	}

	configDir, err := utils.GetConfigDir()
	if err != nil {
		return nil, err
	}
	conf, err := utils.LoadConfigFromFile(configDir, configFileName, &DefaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(&conf, flagSet, defaultFlags)
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("config post flag override: %+v\n", conf))
	}

	d, err := newDispatcher(conf, configDir)
	if err != nil {
		return nil, err
	}
	raw := flagSet.PrintRaw || misc.Truthy(os.Getenv("NO_COLOR")) || !term.IsTerminal(int(os.Stdout.Fd()))
	return repl.New(os.Stdin, d, raw, flagSet.Agent), nil
}

func newDispatcher(conf AppConfig, configDir string) (*agent.Dispatcher, error) {
	completer, err := newCompleter(conf.ChatModel)
	if err != nil {
		return nil, err
	}
	chatDeployment := conf.chatDeployment()
	extractor, err := extract.New(conf.Extractor, completer, chatDeployment)
	if err != nil {
		return nil, fmt.Errorf("failed to setup extractor: %w", err)
	}
	source, err := newSource(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to setup hotel source: %w", err)
	}
	var evaluator *evaluate.Evaluator
	if !conf.NoEval {
		evaluator = evaluate.New(completer, conf.evalDeployment())
	}
	presets, err := agent.LoadPresets(configDir)
	if err != nil {
		return nil, err
	}
	return agent.NewDispatcher(presets, completer, chatDeployment, extractor, source, evaluator), nil
}

func newCompleter(model string) (models.Completer, error) {
	var c models.Completer
	if model == TestModel {
		c = &vendors.Mock{}
	} else {
		a := azure.Default
		c = &a
	}
	if err := c.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup completer: %w", err)
	}
	return c, nil
}

func newSource(conf AppConfig) (search.Source, error) {
	switch conf.Source {
	case SourceBooking, "":
		return booking.New(conf.Booking)
	case SourcePlaces:
		return places.New(conf.Places)
	default:
		return nil, fmt.Errorf("unknown source: '%v', expected one of: [%v, %v]", conf.Source, SourceBooking, SourcePlaces)
	}
}
