// Package license implements the license-approval workflow:
// pending -> approved | rejected, with the decision reflected on the
// contractor profile.
package license

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/olanest/olanest/pkg/fault"
	"github.com/olanest/olanest/pkg/models"
	"github.com/olanest/olanest/pkg/repository"
)

// DefaultRejectNotes is recorded when an admin rejects without notes.
const DefaultRejectNotes = "Rejected by admin."

type Workflow struct {
	apps   repository.LicenseRepo
	dir    repository.ContractorRepo
	logger *slog.Logger
}

func NewWorkflow(apps repository.LicenseRepo, dir repository.ContractorRepo, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{apps: apps, dir: dir, logger: logger}
}

// Submit creates a pending application for the calling contractor. The
// contractor name is snapshotted from the directory at submission time.
// Only one pending application may exist per contractor.
func (w *Workflow) Submit(ctx context.Context, caller models.Caller, licenseNumber, documentURL string) (*models.LicenseApplication, error) {
	if caller.Role != models.RoleContractor {
		return nil, fault.Forbidden("contractor role required")
	}

	licenseNumber = strings.TrimSpace(licenseNumber)
	if licenseNumber == "" {
		return nil, fault.Validation("license number is required")
	}

	profile, err := w.dir.ProfileByID(ctx, caller.ID)
	if err != nil {
		return nil, fault.Transient(err, "profile lookup failed")
	}
	if profile == nil {
		return nil, fault.NotFound("contractor profile %s not found", caller.ID)
	}

	pending, err := w.apps.PendingByContractor(ctx, caller.ID)
	if err != nil {
		return nil, fault.Transient(err, "pending application lookup failed")
	}
	if pending != nil {
		return nil, fault.Validation("a pending application already exists for this contractor")
	}

	app := &models.LicenseApplication{
		ID:                 uuid.NewString(),
		ContractorID:       caller.ID,
		ContractorName:     profile.Name,
		LicenseNumber:      licenseNumber,
		LicenseDocumentURL: strings.TrimSpace(documentURL),
		Status:             models.StatusPending,
		SubmittedAt:        time.Now().UTC().UnixMilli(),
	}
	if err := w.apps.CreateApplication(ctx, app); err != nil {
		return nil, fault.Transient(err, "application create failed")
	}

	w.logger.Info("license application submitted",
		slog.String("application", app.ID),
		slog.String("contractor", caller.ID),
	)

	return app, nil
}

// Approve transitions a pending application to approved and sets the
// contractor's license flag in the same transaction. Re-approving an
// approved application is a no-op; an already rejected one requires a
// fresh submission.
func (w *Workflow) Approve(ctx context.Context, caller models.Caller, applicationID string) error {
	if caller.Role != models.RoleAdmin {
		return fault.Forbidden("admin role required")
	}

	app, err := w.apps.ApplicationByID(ctx, applicationID)
	if err != nil {
		return fault.Transient(err, "application lookup failed")
	}
	if app == nil {
		return fault.NotFound("application %s not found", applicationID)
	}

	switch app.Status {
	case models.StatusApproved:
		return nil
	case models.StatusRejected:
		return fault.Validation("application %s was rejected; a new submission is required", applicationID)
	}

	reviewedAt := time.Now().UTC().UnixMilli()
	if err := w.apps.ApproveApplication(ctx, applicationID, caller.ID, reviewedAt); err != nil {
		return fault.Transient(err, "application approve failed")
	}

	w.logger.Info("license application approved",
		slog.String("application", applicationID),
		slog.String("contractor", app.ContractorID),
		slog.String("reviewer", caller.ID),
	)

	return nil
}

// Reject transitions a pending application to rejected. The contractor's
// license flag is untouched. Re-rejecting is a no-op.
func (w *Workflow) Reject(ctx context.Context, caller models.Caller, applicationID, notes string) error {
	if caller.Role != models.RoleAdmin {
		return fault.Forbidden("admin role required")
	}

	app, err := w.apps.ApplicationByID(ctx, applicationID)
	if err != nil {
		return fault.Transient(err, "application lookup failed")
	}
	if app == nil {
		return fault.NotFound("application %s not found", applicationID)
	}

	switch app.Status {
	case models.StatusRejected:
		return nil
	case models.StatusApproved:
		return fault.Validation("application %s was already approved", applicationID)
	}

	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = DefaultRejectNotes
	}

	reviewedAt := time.Now().UTC().UnixMilli()
	if err := w.apps.RejectApplication(ctx, applicationID, caller.ID, reviewedAt, notes); err != nil {
		return fault.Transient(err, "application reject failed")
	}

	w.logger.Info("license application rejected",
		slog.String("application", applicationID),
		slog.String("reviewer", caller.ID),
	)

	return nil
}

// List returns applications for the admin review screen, newest first.
func (w *Workflow) List(ctx context.Context, caller models.Caller, status models.ApplicationStatus) ([]models.LicenseApplication, error) {
	if caller.Role != models.RoleAdmin {
		return nil, fault.Forbidden("admin role required")
	}
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		return nil, fault.Validation("unknown status %q", status)
	}

	out, err := w.apps.ListApplications(ctx, status)
	if err != nil {
		return nil, fault.Transient(err, "application listing failed")
	}
	if out == nil {
		out = []models.LicenseApplication{}
	}

	return out, nil
}
