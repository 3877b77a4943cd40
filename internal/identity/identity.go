// Package identity maps authenticated principals to roles. Resolution is
// strict: a principal without an account record yields resolution_failed,
// never a default role.
package identity

import (
	"context"
	"strings"

	"log/slog"

	"github.com/olanest/olanest/pkg/fault"
	"github.com/olanest/olanest/pkg/models"
	"github.com/olanest/olanest/pkg/repository"
)

type Resolver struct {
	accounts   repository.AccountRepo
	adminEmail string
	logger     *slog.Logger
}

// NewResolver creates a Resolver. adminEmail is the distinguished principal
// that always resolves to admin without a store lookup.
func NewResolver(accounts repository.AccountRepo, adminEmail string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{accounts: accounts, adminEmail: adminEmail, logger: logger}
}

// Resolve returns the caller for a principal. Lookup failures and unknown
// principals both surface as resolution_failed so no code path can fall
// through to a permissive role.
func (r *Resolver) Resolve(ctx context.Context, p models.Principal) (models.Caller, error) {
	if r.adminEmail != "" && strings.EqualFold(strings.TrimSpace(p.Email), r.adminEmail) {
		return models.Caller{ID: p.ID, Email: p.Email, Role: models.RoleAdmin}, nil
	}

	acc, err := r.accounts.AccountByID(ctx, p.ID)
	if err != nil {
		r.logger.Error("account lookup failed", slog.String("principal", p.ID), slog.Any("err", err))
		return models.Caller{}, fault.ResolutionFailed(err, "account lookup failed for principal %s", p.ID)
	}
	if acc == nil {
		return models.Caller{}, fault.ResolutionFailed(nil, "no account for principal %s", p.ID)
	}

	return models.Caller{ID: acc.ID, Name: acc.Name, Email: acc.Email, Role: acc.Role}, nil
}
