// Package metrics exposes Prometheus collectors for the account service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authentication outcomes.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInactive           = "inactive"
	OutcomeError              = "error"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "accounts",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "authentication_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	registrations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "accounts",
		Name:      "registrations_total",
		Help:      "Accounts created through self-registration or administration.",
	})
)

// RecordAuthentication counts one login attempt.
func RecordAuthentication(outcome string) {
	authAttempts.WithLabelValues(outcome).Inc()
}

// RecordRegistration counts one created account.
func RecordRegistration() {
	registrations.Inc()
}

// Middleware records request count and latency. Routes are labelled by their
// registered path so ids do not explode cardinality.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil && !c.Response().Committed {
			status = errorStatus(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request().Method

		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return err
	}
}

func errorStatus(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
