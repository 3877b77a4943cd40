package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olanest/olanest/pkg/models"
)

const applicationColumns = `id, contractor_id, contractor_name, license_number,
	license_document_url, status, submitted_at, reviewed_at, reviewer_id, reviewer_notes`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.LicenseApplication) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO license_applications (`+applicationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ContractorID, a.ContractorName, a.LicenseNumber, a.LicenseDocumentURL,
		string(a.Status), a.SubmittedAt, a.ReviewedAt, a.ReviewerID, a.ReviewerNotes)
	return err
}

func (r *SQLiteRepo) ApplicationByID(ctx context.Context, id string) (*models.LicenseApplication, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM license_applications WHERE id = ?`, id)

	a, err := scanApplication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) PendingByContractor(ctx context.Context, contractorID string) (*models.LicenseApplication, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM license_applications WHERE contractor_id = ? AND status = 'pending'`,
		contractorID)

	a, err := scanApplication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepo) ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.LicenseApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM license_applications`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY submitted_at DESC`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LicenseApplication
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

// ApproveApplication transitions the application and reflects the decision
// on the contractor profile in one transaction, so a failure leaves
// neither side updated.
func (r *SQLiteRepo) ApproveApplication(ctx context.Context, id, reviewerID string, reviewedAt int64) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var contractorID string
		row := tx.QueryRowContext(ctx, `SELECT contractor_id FROM license_applications WHERE id = ?`, id)
		if err := row.Scan(&contractorID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE license_applications SET status = 'approved', reviewed_at = ?, reviewer_id = ? WHERE id = ?`,
			reviewedAt, reviewerID, id); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE contractor_profiles SET is_license_approved = 1 WHERE contractor_id = ?`, contractorID)
		return err
	})
}

func (r *SQLiteRepo) RejectApplication(ctx context.Context, id, reviewerID string, reviewedAt int64, notes string) error {
	res, err := r.conn.Exec(ctx,
		`UPDATE license_applications SET status = 'rejected', reviewed_at = ?, reviewer_id = ?, reviewer_notes = ? WHERE id = ?`,
		reviewedAt, reviewerID, notes, id)
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

func scanApplication(scan func(...any) error) (*models.LicenseApplication, error) {
	var a models.LicenseApplication
	var status string
	var reviewedAt sql.NullInt64
	if err := scan(&a.ID, &a.ContractorID, &a.ContractorName, &a.LicenseNumber,
		&a.LicenseDocumentURL, &status, &a.SubmittedAt, &reviewedAt,
		&a.ReviewerID, &a.ReviewerNotes); err != nil {
		return nil, err
	}

	a.Status = models.ApplicationStatus(status)
	if reviewedAt.Valid {
		v := reviewedAt.Int64
		a.ReviewedAt = &v
	}

	return &a, nil
}
