package usecase

import (
	"context"
	"iter"

	"accounts/internal/domain/entity"
)

// MaxMonthsBack bounds the registration window in months.
const MaxMonthsBack = 120

// DashboardUsecase computes read-only aggregates. Store failures degrade to
// zeroed or empty results instead of errors.
type DashboardUsecase interface {
	Statistics(ctx context.Context) *entity.AccountStatistics
	// MonthlyRegistrations yields monthsBack+1 buckets, oldest first, ending with the
	// current month. monthsBack is clamped to [0, MaxMonthsBack]. The store is
	// queried each time the sequence is ranged over.
	MonthlyRegistrations(ctx context.Context, monthsBack int) iter.Seq[entity.MonthlyRegistration]
}
