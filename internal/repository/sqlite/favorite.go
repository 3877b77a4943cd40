package sqlite

import (
	"context"
	"fmt"

	"github.com/olanest/olanest/pkg/models"
)

func (r *SQLiteRepo) AddFavorite(ctx context.Context, e *models.FavoriteEdge) error {
	if e == nil {
		return fmt.Errorf("favorite edge is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT OR IGNORE INTO favorites (homeowner_id, contractor_id, created) VALUES (?, ?, ?)`,
		e.HomeownerID, e.ContractorID, e.Created)
	return err
}

func (r *SQLiteRepo) RemoveFavorite(ctx context.Context, homeownerID, contractorID string) error {
	_, err := r.conn.Exec(ctx,
		`DELETE FROM favorites WHERE homeowner_id = ? AND contractor_id = ?`,
		homeownerID, contractorID)
	return err
}

func (r *SQLiteRepo) IsFavorite(ctx context.Context, homeownerID, contractorID string) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx,
		`SELECT COUNT(1) FROM favorites WHERE homeowner_id = ? AND contractor_id = ?`,
		homeownerID, contractorID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *SQLiteRepo) ListByHomeowner(ctx context.Context, homeownerID string) ([]models.FavoriteEdge, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT homeowner_id, contractor_id, created FROM favorites WHERE homeowner_id = ? ORDER BY created`,
		homeownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FavoriteEdge
	for rows.Next() {
		var e models.FavoriteEdge
		if err := rows.Scan(&e.HomeownerID, &e.ContractorID, &e.Created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
