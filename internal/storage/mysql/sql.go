package mysql

// Schema is idempotent; utf8mb4 keeps emoji intact.
var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS review_generations (
  generation   CHAR(40)     NOT NULL PRIMARY KEY,
  records      INT          NOT NULL,
  published_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`, `
CREATE TABLE IF NOT EXISTS corpus_reviews (
  generation  CHAR(40)     NOT NULL,
  position    INT          NOT NULL,
  review_id   VARCHAR(191) NOT NULL,
  review_text MEDIUMTEXT   NOT NULL,
  PRIMARY KEY (generation, position),
  UNIQUE KEY uq_generation_review (generation, review_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`, `
CREATE TABLE IF NOT EXISTS ingest_rejections (
  id      BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  source  VARCHAR(512) NOT NULL,
  reason  TEXT         NOT NULL,
  seen_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Note: position is the source order; reads sort by it.
const insertReviewsPrefix = "INSERT INTO corpus_reviews\n  (generation, position, review_id, review_text)\nVALUES "

// Re-ingesting the same generation rewrites rows in place.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  review_id   = VALUES(review_id),\n" +
	"  review_text = VALUES(review_text)\n"

const publishGenerationSQL = `
INSERT INTO review_generations (generation, records)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  records      = VALUES(records),
  published_at = CURRENT_TIMESTAMP(6)
`

const pruneReviewsSQL = `DELETE FROM corpus_reviews WHERE generation <> ?`

const pruneGenerationsSQL = `DELETE FROM review_generations WHERE generation <> ?`

const insertRejectionSQL = `
INSERT INTO ingest_rejections (source, reason)
VALUES (?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Latest published generation only; rows of an in-flight ingest are invisible
// until PublishGeneration runs.
const listReviewsSQL = `
SELECT r.review_id, r.review_text
FROM corpus_reviews r
JOIN (
  SELECT generation FROM review_generations
  ORDER BY published_at DESC
  LIMIT 1
) g ON g.generation = r.generation
ORDER BY r.position
`
