// Package search fronts the contractor directory with a strict-parameter
// query surface that joins listing results with rating aggregates.
package search

import (
	"context"
	"strings"

	"log/slog"

	"github.com/olanest/olanest/internal/directory"
	"github.com/olanest/olanest/internal/review"
	"github.com/olanest/olanest/pkg/fault"
	"github.com/olanest/olanest/pkg/models"
)

type Facade struct {
	dir     *directory.Service
	reviews *review.Aggregator
	logger  *slog.Logger
}

func New(dir *directory.Service, reviews *review.Aggregator, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{dir: dir, reviews: reviews, logger: logger}
}

// Item pairs a matching profile with its rating aggregate.
type Item struct {
	Profile   models.ContractorProfile `json:"profile"`
	Aggregate models.RatingAggregate   `json:"aggregate"`
}

// Result is always well-formed: when parameters are missing, Incomplete is
// set, Missing names them, and Items is empty. An incomplete query is a
// normal answer, not an error.
type Result struct {
	Incomplete bool     `json:"incomplete"`
	Missing    []string `json:"missing,omitempty"`
	Items      []Item   `json:"items"`
}

// Query requires all three parameters. Blank or whitespace-only values
// count as missing.
func (f *Facade) Query(ctx context.Context, category, province, city string) (*Result, error) {
	category = strings.TrimSpace(category)
	province = strings.TrimSpace(province)
	city = strings.TrimSpace(city)

	var missing []string
	if category == "" {
		missing = append(missing, "category")
	}
	if province == "" {
		missing = append(missing, "province")
	}
	if city == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return &Result{Incomplete: true, Missing: missing, Items: []Item{}}, nil
	}

	profiles, err := f.dir.List(ctx, models.ProfileFilter{
		Category: category,
		Province: province,
		City:     city,
	})
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(profiles))
	for _, p := range profiles {
		agg, err := f.reviews.Aggregate(ctx, p.ID)
		if err != nil {
			return nil, fault.Transient(err, "aggregate lookup failed for contractor %s", p.ID)
		}
		items = append(items, Item{Profile: p, Aggregate: *agg})
	}

	return &Result{Items: items}, nil
}
