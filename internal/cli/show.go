package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"review_corpus/internal/domain"
	"review_corpus/internal/shared"
)

func newShowCmd(cfg shared.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one review",
		Long:  "Show the review with the given review_id. Matching is exact and case-sensitive.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, cfg, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, cfg shared.Config, id string) error {
	c, err := loadCorpus(cmd, cfg)
	if err != nil {
		return err
	}

	r, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("review %q: %w", id, domain.ErrNotFound)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), r)
	}
	printReview(cmd.OutOrStdout(), r)
	return nil
}
