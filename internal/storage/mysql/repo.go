package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"review_corpus/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Migrate creates the tables if they do not exist.
func (r *Repo) Migrate(ctx context.Context) error {
	for _, stmt := range schemaSQL {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (r *Repo) UpsertReviews(ctx context.Context, generation string, offset int, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*4) // 4 params per row
	for i, rv := range rs {
		values = append(values, "(?,?,?,?)")
		args = append(args,
			generation, // generation
			offset+i,   // position
			rv.ID,      // review_id
			rv.Text,    // review_text ("" stays "", never NULL)
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *Repo) PublishGeneration(ctx context.Context, generation string, records int) error {
	_, err := r.db.ExecContext(ctx, publishGenerationSQL, generation, records)
	return err
}

// PruneGenerations removes every generation except keep.
func (r *Repo) PruneGenerations(ctx context.Context, keep string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, pruneReviewsSQL, keep); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prune reviews: %w", err)
	}
	if _, err := tx.ExecContext(ctx, pruneGenerationsSQL, keep); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prune generations: %w", err)
	}
	return tx.Commit()
}

func (r *Repo) LogRejection(ctx context.Context, source, reason string) error {
	_, err := r.db.ExecContext(ctx, insertRejectionSQL, source, reason)
	return err
}

// ListReviews returns the published corpus in source order; an empty
// database yields an empty list.
func (r *Repo) ListReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.Text); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
