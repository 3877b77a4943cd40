package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olanest/olanest/pkg/models"
)

func (r *SQLiteRepo) CreateAccount(ctx context.Context, a *models.Account) error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO accounts (id, name, email, role, password_hash, created) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, string(a.Role), a.PasswordHash, a.Created)
	return err
}

func (r *SQLiteRepo) AccountByID(ctx context.Context, id string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *SQLiteRepo) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var a models.Account
	var role string
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &role, &a.PasswordHash, &a.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	a.Role = models.Role(role)

	return &a, nil
}
