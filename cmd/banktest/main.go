// Package main runs the banking API end-to-end suites against a deployed service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/bank-e2e/internal/fixture"
	"github.com/go-petr/bank-e2e/internal/report"
	"github.com/go-petr/bank-e2e/internal/scenario"
	"github.com/go-petr/bank-e2e/internal/webclient"
	"github.com/go-petr/bank-e2e/pkg/configpkg"
	"github.com/go-petr/bank-e2e/pkg/logpkg"
)

func main() {
	var (
		configPath = flag.String("config", "./configs", "directory holding app.env")
		suite      = flag.String("suite", "all", "suite to run: e2e, negative or all")
		threads    = flag.Int("threads", 0, "parallel workers, overrides TEST_PARALLEL_THREADS")
	)
	flag.Parse()

	config, err := configpkg.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if *threads > 0 {
		config.ParallelThreads = *threads
	}

	logger := logpkg.New(config)

	memory := report.NewMemorySink()
	sink := report.Tee{report.NewLogSink(logger), memory}

	failed, err := run(context.Background(), config, *suite, sink, memory)
	if err != nil {
		logger.Fatal().Err(err).Msg("suite setup failed")
	}

	for _, e := range memory.Events() {
		status := "PASS"
		if e.Outcome == report.Fail {
			status = "FAIL"
		}

		fmt.Printf("%s  %-45s attempts=%d  %s\n", status, e.Test, e.Attempts, e.Elapsed.Round(0))
	}

	fmt.Printf("\n%d scenario(s), %d failed\n", len(memory.Events()), failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func run(ctx context.Context, config configpkg.Config, suite string, sink report.Sink, memory *report.MemorySink) (int, error) {
	builds, err := suiteBuilds(suite)
	if err != nil {
		return 0, err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(config.ParallelThreads)

	for _, build := range builds {
		build := build

		group.Go(func() error {
			// Each worker owns its client configuration snapshot and
			// facade set; the remote service is the only shared state.
			logger := logpkg.New(config)
			client := webclient.New(config, logger)
			workflows := scenario.NewWorkflows(client, config, logger)

			runner := &scenario.Runner{
				Suite:      suite,
				RetryCount: config.RetryCount,
				Timeout:    config.TestTimeout,
				Sink:       sink,
				Logger:     logger,
			}

			// A failing scenario is recorded, not fatal to siblings.
			_ = runner.Run(ctx, build(workflows))

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, err
	}

	return memory.Failed(), nil
}

type buildFunc func(*scenario.Workflows) func() *scenario.Scenario

func suiteBuilds(suite string) ([]buildFunc, error) {
	g := fixture.NewGenerator()

	e2e := []buildFunc{
		func(w *scenario.Workflows) func() *scenario.Scenario {
			return func() *scenario.Scenario {
				account := g.SavingsAccount(0)
				return w.UserAccountTransaction(g.ValidUser(), account, g.Deposit(0, account.Balance))
			}
		},
		func(w *scenario.Workflows) func() *scenario.Scenario {
			return func() *scenario.Scenario {
				return w.UserAccountTransaction(g.ValidUser(), g.CheckingAccount(0),
					g.Transfer(0, 0, decimal.RequireFromString("100.00")))
			}
		},
		func(w *scenario.Workflows) func() *scenario.Scenario { return w.MultiAccountTransfer },
		func(w *scenario.Workflows) func() *scenario.Scenario { return w.AccountLifecycle },
	}

	negative := []buildFunc{
		func(w *scenario.Workflows) func() *scenario.Scenario { return w.InvalidAccountRejected },
		func(w *scenario.Workflows) func() *scenario.Scenario { return w.InsufficientFundsRejected },
		func(w *scenario.Workflows) func() *scenario.Scenario { return w.DeleteThenFetch },
	}

	switch suite {
	case "e2e":
		return e2e, nil
	case "negative":
		return negative, nil
	case "all":
		return append(e2e, negative...), nil
	default:
		return nil, fmt.Errorf("unknown suite %q", suite)
	}
}
