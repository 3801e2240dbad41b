package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaryan182/probo/internal/config"
	"github.com/aaryan182/probo/internal/engine"
	"github.com/aaryan182/probo/internal/events"
)

// newExchange loads config and builds a fresh Exchange, optionally
// pre-loaded with the spec.md §6.4 fixture. This core has no
// persistence (spec.md §1 Non-goals), so every CLI invocation starts
// from a blank or freshly-seeded Exchange — there is nothing to load
// from a previous run.
func newExchange(seed bool) (*engine.Exchange, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	ex, err := engine.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("construct exchange: %w", err)
	}
	if seed {
		ex.ResetData()
	}
	return ex, nil
}

func newRootCmd() *cobra.Command {
	var seed bool

	root := &cobra.Command{
		Use:   "probo",
		Short: "In-process binary-options matching engine CLI",
		Long: `probo drives internal/engine.Exchange directly, with no network
transport in between. Each invocation builds a fresh Exchange — this
core carries no persistence — optionally pre-loaded with the spec.md
seed fixture via --seed.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&seed, "seed", true, "pre-load the standard seed fixture before running")

	root.AddCommand(
		newCreateUserCmd(&seed),
		newCreateSymbolCmd(&seed),
		newOnrampCmd(&seed),
		newBuyCmd(&seed),
		newSellCmd(&seed),
		newCancelCmd(&seed),
		newMintCmd(&seed),
		newBookCmd(&seed),
		newCashCmd(&seed),
		newInventoryCmd(&seed),
		newDemoCmd(),
	)
	return root
}

// withEventLogging starts the fan-out worker against a LogSink for the
// duration of fn, then stops it. A CLI process is short-lived enough
// that a fixed grace period for the drain is simpler than a real
// shutdown handshake with whatever called in.
func withEventLogging(ex *engine.Exchange, fn func() error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ex.Events().Run(ctx, events.LogSink{})
	err := fn()
	time.Sleep(10 * time.Millisecond)
	_ = ex.Events().Stop()
	return err
}
