package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"review_corpus/internal/app"
	"review_corpus/internal/shared"
)

func newSummaryCmd(cfg shared.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print corpus counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}
			s := app.Summarize(c.All())
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:      %d\n", s.Total)
			fmt.Fprintf(out, "With text:  %d (%.2f%%)\n", s.NonEmpty, s.NonEmptyPct)
			fmt.Fprintf(out, "Empty:      %d (%.2f%%)\n", s.Empty, s.EmptyPct)
			fmt.Fprintf(out, "Mean runes: %.3f\n", s.MeanRunes)
			fmt.Fprintf(out, "Max runes:  %d\n", s.MaxRunes)
			return nil
		},
	}
}
