package main

import (
	"os"
	"time"

	"github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

// verbose logging is enabled for these subsystems when using the verbose or very-verbose flags
var verboseLoggingSubsystems = []string{
	"typeahead",
	"typeahead/main",
}

// FlagVerbose enables verbose mode, which shows info information about
// operations invoked in the CLI.
var FlagVerbose = &cli.BoolFlag{
	Name:    "verbose",
	Aliases: []string{"v"},
	Usage:   "enable verbose mode for logging",
	Action:  setLogLevel("INFO"),
}

// FlagVeryVerbose enables very verbose mode, which shows debug information about
// every observable activation.
var FlagVeryVerbose = &cli.BoolFlag{
	Name:    "very-verbose",
	Aliases: []string{"vv"},
	Usage:   "enable very verbose mode for debugging",
	Action:  setLogLevel("DEBUG"),
}

// setLogLevel returns a CLI Action function that sets the
// logging level for the given subsystems to the given level.
func setLogLevel(level string) func(*cli.Context, bool) error {
	return func(cctx *cli.Context, _ bool) error {
		// don't override logging if set in the environment.
		if os.Getenv("GOLOG_LOG_LEVEL") != "" {
			return nil
		}
		for _, name := range verboseLoggingSubsystems {
			_ = log.SetLogLevel(name, level)
		}
		return nil
	}
}

var FlagDebounce = &cli.DurationFlag{
	Name:    "debounce",
	Usage:   "how long input must be quiet before a search is started",
	Value:   300 * time.Millisecond,
	EnvVars: []string{"TYPEAHEAD_DEBOUNCE"},
}

var FlagLatency = &cli.DurationFlag{
	Name:  "latency",
	Usage: "simulated latency of every dictionary search",
	Value: 150 * time.Millisecond,
}

var FlagRetries = &cli.UintFlag{
	Name:  "retries",
	Usage: "number of times a failed search is retried",
	Value: 2,
}

var FlagRetryDelay = &cli.DurationFlag{
	Name:  "retry-delay",
	Usage: "delay before a failed search is retried",
	Value: 50 * time.Millisecond,
}

var FlagFailureRate = &cli.Float64Flag{
	Name:  "failure-rate",
	Usage: "fraction of searches that fail, between 0 and 1",
	Value: 0,
}

var FlagDictionarySize = &cli.IntFlag{
	Name:  "dictionary-size",
	Usage: "number of generated words to search",
	Value: 5000,
}

var FlagSeed = &cli.Uint64Flag{
	Name:        "seed",
	Usage:       "seed for the generated dictionary",
	DefaultText: "random",
}

var FlagMaxSuggestions = &cli.IntFlag{
	Name:  "max-suggestions",
	Usage: "maximum number of suggestions printed per query",
	Value: 8,
}

var FlagMetricsAddr = &cli.StringFlag{
	Name:        "metrics-addr",
	Usage:       "address to serve prometheus metrics on",
	DefaultText: "metrics are not served",
	EnvVars:     []string{"TYPEAHEAD_METRICS_ADDR"},
}
