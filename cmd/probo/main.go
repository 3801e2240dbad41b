// Command probo is a one-shot CLI over an in-process Exchange. Every
// invocation loads config, constructs a fresh Exchange, runs exactly
// one operation, and exits — there is no long-lived server here,
// since HTTP transport and routing sit outside this core's boundary
// (spec.md §1). A real deployment wires internal/engine.Exchange
// directly into whatever transport it chooses; this binary exists so
// the core is runnable and inspectable on its own.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
