// Package favorites maintains each homeowner's saved-contractor list.
package favorites

import (
	"context"
	"time"

	"log/slog"

	"github.com/olanest/olanest/pkg/fault"
	"github.com/olanest/olanest/pkg/models"
	"github.com/olanest/olanest/pkg/repository"
)

type Index struct {
	favs   repository.FavoriteRepo
	dir    repository.ContractorRepo
	logger *slog.Logger
}

func NewIndex(favs repository.FavoriteRepo, dir repository.ContractorRepo, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{favs: favs, dir: dir, logger: logger}
}

// Toggle flips the favorite edge between the calling homeowner and a
// contractor. It returns true when the contractor is a favorite after the
// call. Toggling is idempotent per direction: the edge either exists or it
// does not, never twice.
func (i *Index) Toggle(ctx context.Context, caller models.Caller, contractorID string) (bool, error) {
	if caller.Role != models.RoleHomeowner {
		return false, fault.Forbidden("homeowner role required")
	}
	if contractorID == "" {
		return false, fault.Validation("contractor id is required")
	}

	present, err := i.favs.IsFavorite(ctx, caller.ID, contractorID)
	if err != nil {
		return false, fault.Transient(err, "favorite lookup failed")
	}

	if present {
		if err := i.favs.RemoveFavorite(ctx, caller.ID, contractorID); err != nil {
			return false, fault.Transient(err, "favorite removal failed")
		}
		return false, nil
	}

	edge := &models.FavoriteEdge{
		HomeownerID:  caller.ID,
		ContractorID: contractorID,
		Created:      time.Now().UTC().UnixMilli(),
	}
	if err := i.favs.AddFavorite(ctx, edge); err != nil {
		return false, fault.Transient(err, "favorite write failed")
	}

	return true, nil
}

// List resolves the caller's favorite edges into contractor profiles,
// oldest favorite first. Edges pointing at profiles that no longer exist
// are skipped rather than failing the whole listing.
func (i *Index) List(ctx context.Context, caller models.Caller) ([]models.ContractorProfile, error) {
	if caller.Role != models.RoleHomeowner {
		return nil, fault.Forbidden("homeowner role required")
	}

	edges, err := i.favs.ListByHomeowner(ctx, caller.ID)
	if err != nil {
		return nil, fault.Transient(err, "favorite listing failed")
	}

	out := make([]models.ContractorProfile, 0, len(edges))
	for _, e := range edges {
		profile, err := i.dir.ProfileByID(ctx, e.ContractorID)
		if err != nil {
			return nil, fault.Transient(err, "profile lookup failed")
		}
		if profile == nil {
			i.logger.Warn("favorite points at missing profile",
				slog.String("homeowner", caller.ID), slog.String("contractor", e.ContractorID))
			continue
		}
		out = append(out, *profile)
	}

	return out, nil
}
