package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"review_corpus/internal/domain"
)

// printJSON marshals v as indented JSON, keeping non-ASCII text readable.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReview(w io.Writer, r domain.Review) {
	fmt.Fprintf(w, "Review %s\n", r.ID)
	if !r.HasText() {
		fmt.Fprintln(w, "  (no text)")
		return
	}
	fmt.Fprintf(w, "  %s\n", r.Text)
}

// printReviewTable prints reviews as ID / length / text columns.
func printReviewTable(w io.Writer, rs []domain.Review) error {
	if len(rs) == 0 {
		fmt.Fprintln(w, "No reviews match.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRUNES\tTEXT")
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.ID, r.Runes(), r.Text)
	}
	return tw.Flush()
}
