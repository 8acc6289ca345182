// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/config"
	"accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler and middleware the routes need, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProfileHandler   *handler.ProfileHandler
	AccountHandler   *handler.AccountHandler
	DashboardHandler *handler.DashboardHandler
	SessionAuth      *middleware.SessionAuth
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	profileHandler   *handler.ProfileHandler
	accountHandler   *handler.AccountHandler
	dashboardHandler *handler.DashboardHandler
	sessionAuth      *middleware.SessionAuth
	config           *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		profileHandler:   params.ProfileHandler,
		accountHandler:   params.AccountHandler,
		dashboardHandler: params.DashboardHandler,
		sessionAuth:      params.SessionAuth,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.sessionAuth.GuestOnly)
		authGroup.POST("/login", r.authHandler.Login, r.sessionAuth.GuestOnly)
		authGroup.POST("/logout", r.authHandler.Logout, r.sessionAuth.RequireLogin)
	}

	profileGroup := e.Group("/profile")
	profileGroup.Use(r.sessionAuth.RequireLogin)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.PUT("/password", r.profileHandler.ChangePassword)
	}

	accountsGroup := e.Group("/accounts")
	accountsGroup.Use(r.sessionAuth.RequireLogin)
	{
		accountsGroup.GET("", r.accountHandler.ListAccounts)
		accountsGroup.GET("/active", r.accountHandler.ListActiveAccounts)
		accountsGroup.POST("", r.accountHandler.CreateAccount)
		accountsGroup.GET("/:id", r.accountHandler.GetAccount)
		accountsGroup.PUT("/:id", r.accountHandler.UpdateAccount)
		accountsGroup.DELETE("/:id", r.accountHandler.DeleteAccount)
		accountsGroup.POST("/:id/toggle", r.accountHandler.ToggleActive)
	}

	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(r.sessionAuth.RequireLogin)
	{
		dashboardGroup.GET("/stats", r.dashboardHandler.Stats)
		dashboardGroup.GET("/registrations", r.dashboardHandler.Registrations)
	}
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint when enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, metrics.Handler())
}
