package internal

import (
	"flag"
	"fmt"

	"github.com/baalimago/hotelagent/internal/utils"
)

type Configurations struct {
	ChatModel string
	EvalModel string
	Extractor string
	Source    string
	Resolve   string
	Currency  string
	// Agent skips the agent selection when set.
	Agent    string
	NoEval   bool
	PrintRaw bool
}

var defaultFlags = Configurations{}

type flagPair struct {
	short, long string
	shortVal    *string
	longVal     *string
}

// parseFlags parses CLI flags into Configurations and returns the remaining
// positional args.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("hotelagent", flag.ContinueOnError)
	fs.String("A-helpful-nonexisting-flag", "there is no default", "This isn't a flag. It's only here to tell you that 'hotelagent h/help' gives better overview of usage than 'hotelagent -h'.")

	pairs := []flagPair{
		{short: "cm", long: "chat-model"},
		{short: "em", long: "eval-model"},
		{short: "x", long: "extractor"},
		{short: "s", long: "source"},
		{short: "rs", long: "resolve"},
		{short: "c", long: "currency"},
		{short: "a", long: "agent"},
	}
	dflts := []string{
		defaults.ChatModel,
		defaults.EvalModel,
		defaults.Extractor,
		defaults.Source,
		defaults.Resolve,
		defaults.Currency,
		defaults.Agent,
	}
	usages := []string{
		"Set the chat deployment. 'test' selects the echo model. Mutually exclusive with chat-model.",
		"Set the evaluation deployment. Mutually exclusive with eval-model.",
		"Set the parameter extractor, one of: pattern, model.",
		"Set the hotel source, one of: booking, places.",
		"Set the destination resolution, one of: city-first, first.",
		"Set the currency of the booking prices.",
		"Select the agent by id and skip the agent menu.",
	}
	for i := range pairs {
		pairs[i].shortVal = fs.String(pairs[i].short, dflts[i], usages[i])
		pairs[i].longVal = fs.String(pairs[i].long, dflts[i], usages[i])
	}

	noEvalShort := fs.Bool("ne", defaults.NoEval, "Set to true to skip the evaluation of answers.")
	noEvalLong := fs.Bool("no-eval", defaults.NoEval, "Set to true to skip the evaluation of answers.")
	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to print raw output, without colors.")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to print raw output, without colors.")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}

	vals := make([]string, len(pairs))
	for i, p := range pairs {
		v, err := utils.ReturnNonDefault(*p.shortVal, *p.longVal, dflts[i])
		if err != nil {
			return Configurations{}, []string{}, fmt.Errorf("flags: '%v' and '%v' are mutually exclusive, err: %w", p.short, p.long, err)
		}
		vals[i] = v
	}

	return Configurations{
		ChatModel: vals[0],
		EvalModel: vals[1],
		Extractor: vals[2],
		Source:    vals[3],
		Resolve:   vals[4],
		Currency:  vals[5],
		Agent:     vals[6],
		NoEval:    *noEvalShort || *noEvalLong,
		PrintRaw:  *printRawShort || *printRawLong,
	}, fs.Args(), nil
}

// applyFlagOverrides sets the values of the flags which differ from the
// defaults, so that the convention flags > file > default holds.
func applyFlagOverrides(conf *AppConfig, flagSet, defaultFlags Configurations) {
	if flagSet.ChatModel != defaultFlags.ChatModel {
		conf.ChatModel = flagSet.ChatModel
	}
	if flagSet.EvalModel != defaultFlags.EvalModel {
		conf.EvalModel = flagSet.EvalModel
	}
	if flagSet.Extractor != defaultFlags.Extractor {
		conf.Extractor = flagSet.Extractor
	}
	if flagSet.Source != defaultFlags.Source {
		conf.Source = flagSet.Source
	}
	if flagSet.Resolve != defaultFlags.Resolve {
		conf.Booking.Resolve = flagSet.Resolve
	}
	if flagSet.Currency != defaultFlags.Currency {
		conf.Booking.Currency = flagSet.Currency
	}
	if flagSet.NoEval != defaultFlags.NoEval {
		conf.NoEval = flagSet.NoEval
	}
}
