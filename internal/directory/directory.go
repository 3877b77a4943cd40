// Package directory holds the contractor profile store: merge-upserts,
// lookups and filtered listing.
package directory

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/olanest/olanest/pkg/fault"
	"github.com/olanest/olanest/pkg/models"
	"github.com/olanest/olanest/pkg/repository"
)

type Service struct {
	repo   repository.ContractorRepo
	logger *slog.Logger
}

func New(repo repository.ContractorRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Upsert merges the supplied fields into the stored profile, creating the
// record when absent. The merged profile must carry a name and at least one
// service category.
func (s *Service) Upsert(ctx context.Context, contractorID string, upd *models.ProfileUpdate) (*models.ContractorProfile, error) {
	if upd == nil {
		return nil, fault.Validation("profile update is empty")
	}

	cur, err := s.repo.ProfileByID(ctx, contractorID)
	if err != nil {
		return nil, fault.Transient(err, "profile lookup failed")
	}
	if cur == nil {
		cur = &models.ContractorProfile{ID: contractorID}
	}

	merge(cur, upd)

	if strings.TrimSpace(cur.Name) == "" {
		return nil, fault.Validation("name is required")
	}
	if len(cur.ServiceCategories) == 0 {
		return nil, fault.Validation("at least one service category is required")
	}

	cur.Updated = time.Now().UTC().UnixMilli()
	if err := s.repo.SaveProfile(ctx, cur); err != nil {
		return nil, fault.Transient(err, "profile save failed")
	}

	return cur, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.ContractorProfile, error) {
	p, err := s.repo.ProfileByID(ctx, id)
	if err != nil {
		return nil, fault.Transient(err, "profile lookup failed")
	}
	if p == nil {
		return nil, fault.NotFound("contractor %s not found", id)
	}

	return p, nil
}

// List returns profiles matching the filter; an empty result is a valid
// answer, never an error.
func (s *Service) List(ctx context.Context, f models.ProfileFilter) ([]models.ContractorProfile, error) {
	out, err := s.repo.ListProfiles(ctx, f)
	if err != nil {
		return nil, fault.Transient(err, "profile listing failed")
	}
	if out == nil {
		out = []models.ContractorProfile{}
	}

	return out, nil
}

func merge(dst *models.ContractorProfile, upd *models.ProfileUpdate) {
	if upd.Name != nil {
		dst.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		dst.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.City != nil {
		dst.City = strings.TrimSpace(*upd.City)
	}
	if upd.Province != nil {
		dst.Province = strings.TrimSpace(*upd.Province)
	}
	if upd.ServiceCategories != nil {
		dst.ServiceCategories = *upd.ServiceCategories
	}
	if upd.Bio != nil {
		dst.Bio = *upd.Bio
	}
	if upd.ProfilePictureURL != nil {
		dst.ProfilePictureURL = *upd.ProfilePictureURL
	}
	if upd.LicenseNumber != nil {
		dst.LicenseNumber = strings.TrimSpace(*upd.LicenseNumber)
	}
	if upd.Phone != nil {
		dst.Phone = *upd.Phone
	}
	if upd.Website != nil {
		dst.Website = *upd.Website
	}
	if upd.SocialLinks != nil {
		dst.SocialLinks = *upd.SocialLinks
	}
	if upd.LanguagePreferences != nil {
		dst.LanguagePreferences = *upd.LanguagePreferences
	}
	if upd.Availability != nil {
		dst.Availability = *upd.Availability
	}
}
