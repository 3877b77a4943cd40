// Package review stores homeowner reviews, contractor replies, and derives
// per-contractor rating aggregates.
package review

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

type Aggregator struct {
	reviews repository.ReviewRepo
	cache   *AggregateCache
	logger  *slog.Logger
}

// NewAggregator creates the review service. cache may be nil.
func NewAggregator(reviews repository.ReviewRepo, cache *AggregateCache, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{reviews: reviews, cache: cache, logger: logger}
}

// Add records a homeowner's review. One active review exists per
// (reviewer, contractor): a resubmission replaces the earlier review and
// keeps its id.
func (a *Aggregator) Add(ctx context.Context, caller models.Caller, contractorID string, rating int, title, comment string) (*models.Review, error) {
	if caller.Role != models.RoleHomeowner {
		return nil, fault.Forbidden("homeowner role required")
	}
	if rating < 1 || rating > 5 {
		return nil, fault.Validation("rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fault.Validation("comment is required")
	}

	rev := &models.Review{
		ID:           uuid.NewString(),
		ContractorID: contractorID,
		ReviewerID:   caller.ID,
		ReviewerName: callerName(caller),
		Rating:       rating,
		Title:        strings.TrimSpace(title),
		Comment:      comment,
		Created:      time.Now().UTC().UnixMilli(),
	}

	existing, err := a.reviews.ReviewByReviewer(ctx, contractorID, caller.ID)
	if err != nil {
		return nil, fault.Transient(err, "review lookup failed")
	}
	if existing != nil {
		rev.ID = existing.ID
	}

	if err := a.reviews.UpsertReview(ctx, rev); err != nil {
		return nil, fault.Transient(err, "review write failed")
	}

	a.invalidate(ctx, contractorID)

	return rev, nil
}

// Reply records the reviewed contractor's public response, overwriting any
// prior reply. Only the contractor the review targets may reply.
func (a *Aggregator) Reply(ctx context.Context, caller models.Caller, reviewID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fault.Validation("reply text is required")
	}

	rev, err := a.reviews.ReviewByID(ctx, reviewID)
	if err != nil {
		return fault.Transient(err, "review lookup failed")
	}
	if rev == nil {
		return fault.NotFound("review %s not found", reviewID)
	}
	if caller.Role != models.RoleContractor || caller.ID != rev.ContractorID {
		return fault.Forbidden("only the reviewed contractor may reply")
	}

	if err := a.reviews.SetContractorComment(ctx, reviewID, text); err != nil {
		return fault.Transient(err, "reply write failed")
	}

	return nil
}

// List returns a contractor's reviews, newest first.
func (a *Aggregator) List(ctx context.Context, contractorID string) ([]models.Review, error) {
	out, err := a.reviews.ListByContractor(ctx, contractorID)
	if err != nil {
		return nil, fault.Transient(err, "review listing failed")
	}
	if out == nil {
		out = []models.Review{}
	}

	return out, nil
}

// Aggregate derives the contractor's rating summary, serving from cache
// when possible. Zero reviews yield an average of exactly 0.
func (a *Aggregator) Aggregate(ctx context.Context, contractorID string) (*models.RatingAggregate, error) {
	if agg, ok := a.cache.Get(ctx, contractorID); ok {
		return agg, nil
	}

	agg, err := a.reviews.Aggregate(ctx, contractorID)
	if err != nil {
		return nil, fault.Transient(err, "aggregate computation failed")
	}

	if err := a.cache.Put(ctx, agg); err != nil {
		a.logger.Warn("aggregate cache put failed",
			slog.String("contractor", contractorID), slog.Any("err", err))
	}

	return agg, nil
}

func (a *Aggregator) invalidate(ctx context.Context, contractorID string) {
	if err := a.cache.Invalidate(ctx, contractorID); err != nil {
		a.logger.Warn("aggregate cache invalidation failed",
			slog.String("contractor", contractorID), slog.Any("err", err))
	}
}

func callerName(c models.Caller) string {
	if strings.TrimSpace(c.Name) == "" {
		return "Anonymous"
	}
	return c.Name
}
