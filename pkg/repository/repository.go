package repository

import (
	"context"

	"github.com/olanest/olanest/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when the entity is absent; classifying absence
// as not_found is the services' job.

type AccountRepo interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	AccountByID(ctx context.Context, id string) (*models.Account, error)
	AccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

type ContractorRepo interface {
	// SaveProfile inserts or fully replaces the profile row.
	SaveProfile(ctx context.Context, p *models.ContractorProfile) error
	ProfileByID(ctx context.Context, id string) (*models.ContractorProfile, error)
	// ListProfiles applies case-insensitive trimmed matching on province and
	// city and case-insensitive membership on category; results keep
	// insertion order.
	ListProfiles(ctx context.Context, f models.ProfileFilter) ([]models.ContractorProfile, error)
	SetLicenseApproved(ctx context.Context, contractorID string, approved bool) error
}

type LicenseRepo interface {
	CreateApplication(ctx context.Context, a *models.LicenseApplication) error
	ApplicationByID(ctx context.Context, id string) (*models.LicenseApplication, error)
	PendingByContractor(ctx context.Context, contractorID string) (*models.LicenseApplication, error)
	// ListApplications returns applications newest first; empty status means
	// all statuses.
	ListApplications(ctx context.Context, status models.ApplicationStatus) ([]models.LicenseApplication, error)
	// ApproveApplication marks the application approved and flips the
	// contractor's license flag in the same transaction.
	ApproveApplication(ctx context.Context, id, reviewerID string, reviewedAt int64) error
	RejectApplication(ctx context.Context, id, reviewerID string, reviewedAt int64, notes string) error
}

type ReviewRepo interface {
	// UpsertReview replaces any earlier review by the same reviewer for the
	// same contractor.
	UpsertReview(ctx context.Context, rev *models.Review) error
	ReviewByID(ctx context.Context, id string) (*models.Review, error)
	ReviewByReviewer(ctx context.Context, contractorID, reviewerID string) (*models.Review, error)
	ListByContractor(ctx context.Context, contractorID string) ([]models.Review, error)
	SetContractorComment(ctx context.Context, reviewID, comment string) error
	Aggregate(ctx context.Context, contractorID string) (*models.RatingAggregate, error)
}

type FavoriteRepo interface {
	AddFavorite(ctx context.Context, e *models.FavoriteEdge) error
	RemoveFavorite(ctx context.Context, homeownerID, contractorID string) error
	IsFavorite(ctx context.Context, homeownerID, contractorID string) (bool, error)
	ListByHomeowner(ctx context.Context, homeownerID string) ([]models.FavoriteEdge, error)
}
