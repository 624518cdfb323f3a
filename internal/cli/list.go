package cli

import (
	"errors"
	"slices"

	"github.com/spf13/cobra"

	"review_corpus/internal/corpus"
	"review_corpus/internal/shared"
)

func newListCmd(cfg shared.Config) *cobra.Command {
	var (
		contains   string
		ignoreCase bool
		empty      bool
		nonEmpty   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Long:  "List reviews in corpus order, optionally filtered by text content or emptiness.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if empty && nonEmpty {
				return errors.New("--empty and --non-empty are mutually exclusive")
			}
			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}

			var ps []corpus.Predicate
			switch {
			case contains != "" && ignoreCase:
				ps = append(ps, corpus.TextContainsFold(contains))
			case contains != "":
				ps = append(ps, corpus.TextContains(contains))
			}
			if empty {
				ps = append(ps, corpus.EmptyText())
			}
			if nonEmpty {
				ps = append(ps, corpus.WithText())
			}

			rs := slices.Collect(c.Filter(corpus.And(ps...)))
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), rs)
			}
			return printReviewTable(cmd.OutOrStdout(), rs)
		},
	}

	cmd.Flags().StringVar(&contains, "contains", "", "only reviews whose text contains this substring")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match --contains case-insensitively")
	cmd.Flags().BoolVar(&empty, "empty", false, "only reviews with empty text")
	cmd.Flags().BoolVar(&nonEmpty, "non-empty", false, "only reviews with text")

	return cmd
}
