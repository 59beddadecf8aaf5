package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ducka/go-kayak-rx/instrumentation"
	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/operator"
	"github.com/ducka/go-kayak-rx/scheduler"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

type suggestion struct {
	Term    string
	Matches []string
	Err     error
}

type pipelineConfig struct {
	debounce   time.Duration
	retries    uint
	retryDelay time.Duration
	scheduler  scheduler.Scheduler
}

// suggestions turns raw input lines into one suggestion per settled, changed term. A term that is
// still being searched when the next one settles has its search cancelled.
func suggestions(lines *observe.Observable[string], dict searcher, cfg pipelineConfig) *observe.Observable[suggestion] {
	return operator.Pipe4(
		lines,
		operator.Map[string, string](func(line string, _ int) (string, error) {
			return strings.ToLower(strings.TrimSpace(line)), nil
		}),
		operator.DebounceTime[string](cfg.debounce),
		operator.DistinctUntilChanged[string](),
		operator.SwitchMap[string, suggestion](func(term string, _ int) *observe.Observable[suggestion] {
			return search(dict, term, cfg)
		}),
	)
}

func search(dict searcher, term string, cfg pipelineConfig) *observe.Observable[suggestion] {
	attempt := observe.Attempt(
		func(ctx context.Context) ([]string, error) {
			return dict.Search(ctx, term)
		},
		observe.WithActivityName("Search"),
		observe.WithScheduler(cfg.scheduler),
		observe.WithRetry(
			retry.Attempts(cfg.retries+1),
			retry.Delay(cfg.retryDelay),
			retry.RetryIf(func(err error) bool {
				return errors.Is(err, errUnavailable)
			}),
		),
	)

	return operator.Pipe2(
		attempt,
		operator.Map[[]string, suggestion](func(matches []string, _ int) (suggestion, error) {
			return suggestion{Term: term, Matches: matches}, nil
		}),
		operator.CatchError[suggestion](func(err error) *observe.Observable[suggestion] {
			return observe.Value(suggestion{Term: term, Err: err})
		}),
	)
}

func typeaheadAction(cctx *cli.Context) error {
	ctx := cctx.Context

	instrumentation.SetLogger(instrumentation.NewGoLogger("typeahead"))
	if addr := cctx.String(FlagMetricsAddr.Name); addr != "" {
		if err := serveMetrics(ctx, addr); err != nil {
			return err
		}
	}

	dict := newDictionary(
		cctx.Int(FlagDictionarySize.Name),
		cctx.Uint64(FlagSeed.Name),
		cctx.Duration(FlagLatency.Name),
		cctx.Float64(FlagFailureRate.Name),
		cctx.Int(FlagMaxSuggestions.Name),
	)
	logger.Infow("dictionary ready", "words", humanize.Comma(int64(len(dict.words))))

	loop := scheduler.NewLoop(nil)
	defer loop.Stop()

	lines := make(chan string)
	go readLines(ctx, cctx.App.Reader, lines)

	var (
		received, answered, failed int
		done                       = make(chan error, 1)
		start                      = time.Now()
	)

	source := operator.Pipe1(
		observe.FromChannel(lines, observe.WithContext(ctx), observe.WithScheduler(loop)),
		operator.Tap[string](observe.ObserverFuncs[string]{
			OnNext: func(string) { received++ },
		}),
	)
	pipeline := suggestions(source, dict, pipelineConfig{
		debounce:   cctx.Duration(FlagDebounce.Name),
		retries:    cctx.Uint(FlagRetries.Name),
		retryDelay: cctx.Duration(FlagRetryDelay.Name),
		scheduler:  loop,
	})

	loop.Run(func() {
		pipeline.Subscribe(
			func(s suggestion) {
				if s.Err != nil {
					failed++
					fmt.Fprintf(cctx.App.ErrWriter, "%q: %v\n", s.Term, s.Err)
					return
				}
				answered++
				fmt.Fprintf(cctx.App.Writer, "%q: %s\n", s.Term, strings.Join(s.Matches, ", "))
			},
			observe.WithOnError(func(err error) { done <- err }),
			observe.WithOnComplete(func() { done <- nil }),
		)
	})

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
	}
	loop.Stop()

	fmt.Fprintf(cctx.App.Writer, "read %s lines, answered %s queries, %s failed, started %s\n",
		humanize.Comma(int64(received)),
		humanize.Comma(int64(answered)),
		humanize.Comma(int64(failed)),
		humanize.Time(start),
	)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func readLines(ctx context.Context, r io.Reader, out chan<- string) {
	defer close(out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case out <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Warnw("failed to read input", "err", err)
	}
}

func serveMetrics(ctx context.Context, addr string) error {
	measurer, err := instrumentation.NewPrometheusMeasurer(prometheus.DefaultRegisterer, "typeahead")
	if err != nil {
		return err
	}
	instrumentation.SetMeasurer(measurer)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("metrics server failed", "addr", addr, "err", err)
		}
	}()
	context.AfterFunc(ctx, func() {
		_ = server.Close()
	})

	logger.Infow("serving metrics", "addr", addr)
	return nil
}
