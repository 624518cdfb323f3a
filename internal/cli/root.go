// Package cli defines the cobra command tree for reviewctl.
package cli

import (
	"github.com/spf13/cobra"

	"review_corpus/internal/adapters/remote"
	"review_corpus/internal/app"
	"review_corpus/internal/corpus"
	"review_corpus/internal/shared"
)

var (
	flagSource string
	flagFormat string
)

// NewRootCmd creates the root cobra command with global flags. cfg supplies
// flag defaults and source fetching settings for every subcommand.
func NewRootCmd(cfg shared.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Inspect the customer review corpus",
		Long:          "Load, validate and browse the customer review corpus, and export it as CSV with a JSON summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagSource, "source", cfg.Source, "corpus source (embedded|file path|http(s) URL)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")

	root.AddCommand(
		newValidateCmd(cfg),
		newShowCmd(cfg),
		newListCmd(cfg),
		newSummaryCmd(cfg),
		newReportCmd(cfg),
		newVersionCmd(),
	)

	return root
}

// loadCorpus reads and validates the corpus named by --source.
func loadCorpus(cmd *cobra.Command, cfg shared.Config) (*corpus.Corpus, error) {
	return app.LoadCorpus(cmd.Context(), flagSource, remote.New(cfg.SourceToken, cfg.SourceRPS))
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
