package sqlite

import (
	"log/slog"

	"github.com/olanest/olanest/internal/db"
	"github.com/olanest/olanest/pkg/repository"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.AccountRepo = (*SQLiteRepo)(nil)
var _ repository.ContractorRepo = (*SQLiteRepo)(nil)
var _ repository.LicenseRepo = (*SQLiteRepo)(nil)
var _ repository.ReviewRepo = (*SQLiteRepo)(nil)
var _ repository.FavoriteRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}
