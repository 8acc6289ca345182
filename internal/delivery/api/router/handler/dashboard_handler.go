package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"

	"accounts/config"
	"accounts/internal/delivery/api/response"
	"accounts/internal/domain/entity"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	Config      *config.Config
	Logger      *slog.Logger
}

// DashboardHandler serves read-only account aggregates.
type DashboardHandler struct {
	dashboardUC       usecase.DashboardUsecase
	defaultMonthsBack int
	logger            *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC:       params.DashboardUC,
		defaultMonthsBack: min(params.Config.Dashboard.MonthsBack, usecase.MaxMonthsBack),
		logger:            params.Logger,
	}
}

// StatsResponse is the dashboard summary. AccountCount mirrors Statistics.Total.
type StatsResponse struct {
	Statistics   *entity.AccountStatistics `json:"statistics"`
	AccountCount int64                     `json:"account_count"`
}

// RegistrationsResponse is the monthly sign-up series, oldest month first.
type RegistrationsResponse struct {
	MonthsBack    int                          `json:"months_back"`
	Registrations []entity.MonthlyRegistration `json:"registrations"`
}

// Stats always answers 200; an unreachable store yields a zeroed snapshot.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats := h.dashboardUC.Statistics(c.Request().Context())
	if stats == nil {
		stats = &entity.AccountStatistics{}
	}

	return response.Success(c, http.StatusOK, StatsResponse{
		Statistics:   stats,
		AccountCount: stats.Total,
	})
}

// Registrations reads the optional months query parameter.
func (h *DashboardHandler) Registrations(c echo.Context) error {
	monthsBack := h.defaultMonthsBack
	if raw := c.QueryParam("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > usecase.MaxMonthsBack {
			return response.BindingError(c, "months must be an integer between 0 and "+strconv.Itoa(usecase.MaxMonthsBack))
		}
		monthsBack = n
	}

	registrations := slices.Collect(h.dashboardUC.MonthlyRegistrations(c.Request().Context(), monthsBack))
	if registrations == nil {
		registrations = []entity.MonthlyRegistration{}
	}

	return response.Success(c, http.StatusOK, RegistrationsResponse{
		MonthsBack:    monthsBack,
		Registrations: registrations,
	})
}
