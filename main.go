package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/hotelagent/internal"
	"github.com/baalimago/hotelagent/internal/utils"
	"github.com/joho/godotenv"
)

const usage = `hotelagent - interactive hotel search assistant

Prerequisites:
  - Set AZURE_OPENAI_API_KEY and AZURE_OPENAI_ENDPOINT to use Azure OpenAI, or OPENAI_API_KEY to use OpenAI
  - (Optional) Set AZURE_API_VERSION, default is 2023-05-15
  - (Optional) Set AZURE_DEPLOYMENT_NAME and AZURE_EVAL_DEPLOYMENT_NAME to select the chat and evaluation deployments
  - Set RAPIDAPI_KEY to search hotels with booking.com, or GOOGLE_API_KEY to search with Google Places
  - (Optional) Set NO_COLOR to disable ansi color output
  - Any of the above may be set in a .env file in the working directory

Usage: hotelagent [flags] [command]

Flags:
  -cm, -chat-model string      Set the chat deployment. 'test' selects the echo model. (default is found in hotelagentConfig.json)
  -em, -eval-model string      Set the evaluation deployment. (default is the chat deployment)
  -x, -extractor string        Set the parameter extractor, one of: pattern, model. (default is found in hotelagentConfig.json)
  -s, -source string           Set the hotel source, one of: booking, places. (default is found in hotelagentConfig.json)
  -rs, -resolve string         Set the destination resolution, one of: city-first, first. (default is found in hotelagentConfig.json)
  -c, -currency string         Set the currency of the booking prices. (default is found in hotelagentConfig.json)
  -a, -agent string            Select the agent by id and skip the agent menu.
  -ne, -no-eval bool           Set to true to skip the evaluation of answers.
  -r, -raw bool                Set to true to print raw output, without colors.

Commands:
  (none)                        Start the interactive prompt
  h|help                        Display this help message
  v|version                     Display the version

Configuration is stored in <config dir>/.hotelagent, override with HOTELAGENT_CONFIG_HOME.
Agent presets may be replaced by placing an agents.yaml in the same directory.

Examples:
  - hotelagent
  - hotelagent -a 3 -x model
  - hotelagent -s places -ne
`

func run(args []string) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ancli.PrintWarn(fmt.Sprintf("failed to load .env file: %v\n", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner, err := internal.Setup(ctx, usage, args)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to setup: %v\n", err))
		return 1
	}
	go func() { shutdown.Monitor(cancel) }()
	err = runner.Run(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye!\n")
	}
	return 0
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}
