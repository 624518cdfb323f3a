package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"review_corpus/internal/shared"
)

func newValidateCmd(cfg shared.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the corpus source",
		Long:  "Load the corpus source and report the first validation or encoding error, if any.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCorpus(cmd, cfg)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"source":  flagSource,
					"records": c.Len(),
					"digest":  c.Digest(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d records (digest %s)\n", c.Len(), c.Digest())
			return nil
		},
	}
}
