package impl

import (
	"context"
	"iter"
	"log/slog"
	"math"
	"time"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	"accounts/internal/usecase"
	"accounts/internal/util"
)

type dashboardService struct {
	accountRepo repository.AccountRepository
	location    *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

// NewDashboardService is the constructor for dashboardService. Calendar boundaries
// are computed in the configured dashboard timezone.
func NewDashboardService(
	accountRepo repository.AccountRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.DashboardUsecase {
	return &dashboardService{
		accountRepo: accountRepo,
		location:    cfg.Location(),
		now:         time.Now,
		logger:      logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Statistics never fails; a store error yields a zeroed snapshot.
func (srv *dashboardService) Statistics(ctx context.Context) *entity.AccountStatistics {
	stats, err := srv.statistics(ctx)
	if err != nil {
		srv.log(ctx).Warn("Account statistics unavailable, returning zeroed snapshot", slog.Any("error", err))

		return &entity.AccountStatistics{}
	}

	return stats
}

func (srv *dashboardService) statistics(ctx context.Context) (*entity.AccountStatistics, error) {
	now := srv.now().In(srv.location)
	todayStart := util.StartOfDay(now)
	tomorrowStart := todayStart.AddDate(0, 0, 1)

	total, err := srv.accountRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := srv.accountRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	today, err := srv.accountRepo.CountCreatedBetween(ctx, todayStart, tomorrowStart)
	if err != nil {
		return nil, err
	}
	week, err := srv.accountRepo.CountCreatedBetween(ctx, now.AddDate(0, 0, -7), tomorrowStart)
	if err != nil {
		return nil, err
	}
	month, err := srv.accountRepo.CountCreatedBetween(ctx, now.AddDate(0, 0, -30), tomorrowStart)
	if err != nil {
		return nil, err
	}

	return &entity.AccountStatistics{
		Total:            total,
		Active:           active,
		Inactive:         total - active,
		CreatedToday:     today,
		CreatedThisWeek:  week,
		CreatedThisMonth: month,
		ActivePercentage: activePercentage(active, total),
	}, nil
}

// activePercentage rounds to one decimal place.
func activePercentage(active, total int64) float64 {
	if total <= 0 {
		return 0
	}

	return math.Round(float64(active)/float64(total)*1000) / 10
}

// MonthlyRegistrations queries the store each time the returned sequence is ranged
// over. A store error yields an empty sequence.
func (srv *dashboardService) MonthlyRegistrations(ctx context.Context, monthsBack int) iter.Seq[entity.MonthlyRegistration] {
	monthsBack = min(max(monthsBack, 0), usecase.MaxMonthsBack)

	return func(yield func(entity.MonthlyRegistration) bool) {
		buckets, err := srv.monthlyBuckets(ctx, monthsBack)
		if err != nil {
			srv.log(ctx).Warn("Monthly registrations unavailable, returning empty series",
				slog.Int("months_back", monthsBack),
				slog.Any("error", err),
			)

			return
		}

		for _, bucket := range buckets {
			if !yield(bucket) {
				return
			}
		}
	}
}

func (srv *dashboardService) monthlyBuckets(ctx context.Context, monthsBack int) ([]entity.MonthlyRegistration, error) {
	current := util.StartOfMonth(srv.now().In(srv.location))
	buckets := make([]entity.MonthlyRegistration, 0, monthsBack+1)

	for offset := monthsBack; offset >= 0; offset-- {
		start := current.AddDate(0, -offset, 0)
		end := start.AddDate(0, 1, 0)

		count, err := srv.accountRepo.CountCreatedBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}

		buckets = append(buckets, entity.MonthlyRegistration{
			Month: util.MonthAbbreviation(start.Month()),
			Year:  start.Year(),
			Count: count,
			Key:   start.Format("2006-01"),
		})
	}

	return buckets, nil
}
