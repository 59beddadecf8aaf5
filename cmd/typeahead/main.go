package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

var logger = log.Logger("typeahead/main")

func main() {
	// set up a context that is canceled when the command is interrupted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			logger.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}

		// Allow any further SIGTERM or SIGINT to kill process
		signal.Stop(interrupt)
	}()

	app := &cli.App{
		Name:      "typeahead",
		Usage:     "Suggest words from a generated dictionary for each line typed on stdin",
		UsageText: "typeahead [options]",
		Suggest:   true,
		Flags: []cli.Flag{
			FlagVerbose,
			FlagVeryVerbose,
			FlagDebounce,
			FlagLatency,
			FlagRetries,
			FlagRetryDelay,
			FlagFailureRate,
			FlagDictionarySize,
			FlagSeed,
			FlagMaxSuggestions,
			FlagMetricsAddr,
		},
		Action: typeaheadAction,
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Fatal(err)
	}
}
