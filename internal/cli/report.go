package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"review_corpus/internal/app"
	"review_corpus/internal/report"
	"review_corpus/internal/shared"
)

func newReportCmd(cfg shared.Config) *cobra.Command {
	var csvPath, summaryPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the CSV export and JSON summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}
			if err := report.Generate(c.All(), app.Summarize(c.All()), csvPath, summaryPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s (%d records)\n", csvPath, summaryPath, c.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", cfg.OutputCSV, "path of the per-review CSV")
	cmd.Flags().StringVar(&summaryPath, "summary", cfg.OutputSummary, "path of the JSON summary")

	return cmd
}
