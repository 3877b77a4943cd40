package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olanest/olanest/pkg/models"
)

const reviewColumns = `id, contractor_id, reviewer_id, reviewer_name, rating, title, comment, created, contractor_comment`

// UpsertReview keeps a single active review per (contractor, reviewer):
// a conflicting insert replaces the earlier review's content and refreshes
// its timestamp, but keeps the original review id.
func (r *SQLiteRepo) UpsertReview(ctx context.Context, rev *models.Review) error {
	if rev == nil {
		return fmt.Errorf("review is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO reviews (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(contractor_id, reviewer_id) DO UPDATE SET
			reviewer_name=excluded.reviewer_name, rating=excluded.rating,
			title=excluded.title, comment=excluded.comment, created=excluded.created,
			contractor_comment=''`,
		rev.ID, rev.ContractorID, rev.ReviewerID, rev.ReviewerName,
		rev.Rating, rev.Title, rev.Comment, rev.Created, rev.ContractorComment)
	return err
}

func (r *SQLiteRepo) ReviewByID(ctx context.Context, id string) (*models.Review, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	return scanReviewRow(row)
}

func (r *SQLiteRepo) ReviewByReviewer(ctx context.Context, contractorID, reviewerID string) (*models.Review, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE contractor_id = ? AND reviewer_id = ?`,
		contractorID, reviewerID)
	return scanReviewRow(row)
}

func (r *SQLiteRepo) ListByContractor(ctx context.Context, contractorID string) ([]models.Review, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE contractor_id = ? ORDER BY created DESC`,
		contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.ContractorID, &rev.ReviewerID, &rev.ReviewerName,
			&rev.Rating, &rev.Title, &rev.Comment, &rev.Created, &rev.ContractorComment); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) SetContractorComment(ctx context.Context, reviewID, comment string) error {
	res, err := r.conn.Exec(ctx,
		`UPDATE reviews SET contractor_comment = ? WHERE id = ?`, comment, reviewID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Aggregate derives the rating summary from the live review set. COALESCE
// pins the zero-review average to exactly 0 rather than NULL.
func (r *SQLiteRepo) Aggregate(ctx context.Context, contractorID string) (*models.RatingAggregate, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE contractor_id = ?`,
		contractorID)

	agg := models.RatingAggregate{ContractorID: contractorID}
	if err := row.Scan(&agg.ReviewCount, &agg.AverageRating); err != nil {
		return nil, err
	}

	return &agg, nil
}

func scanReviewRow(row *sql.Row) (*models.Review, error) {
	var rev models.Review
	if err := row.Scan(&rev.ID, &rev.ContractorID, &rev.ReviewerID, &rev.ReviewerName,
		&rev.Rating, &rev.Title, &rev.Comment, &rev.Created, &rev.ContractorComment); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &rev, nil
}
