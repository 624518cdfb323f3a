// Package main is the entry point for the reviewctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"review_corpus/internal/adapters/observability"
	"review_corpus/internal/cli"
	"review_corpus/internal/shared"
)

func main() {
	cfg := shared.Load()
	// stdout carries command output
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).
		Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cli.NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
