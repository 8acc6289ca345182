package handler

import (
	"log/slog"
	"net/http"

	"accounts/internal/delivery/api/response"
	"accounts/internal/delivery/api/session"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/infra/metrics"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Binder *session.Binder
	Logger *slog.Logger
}

// AuthHandler serves sign-up, login and logout.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	binder *session.Binder
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		binder: params.Binder,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for self-service sign-up
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,max=120"`
	Username        string `json:"username" validate:"required,max=80"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Phone           string `json:"phone" validate:"max=20"`
}

// LoginRequest accepts a username or an email as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Register creates an account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	account, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Phone:           req.Phone,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}
	metrics.RecordRegistration()

	if err := h.binder.SignIn(c, account); err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, account)
}

// Login verifies credentials and binds the account to the session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	account, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	metrics.RecordAuthentication(loginOutcome(err))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.binder.SignIn(c, account); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, account)
}

// Logout clears the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.binder.SignOut(c); err != nil {
		return err
	}

	return response.Message(c, "logged out")
}

func loginOutcome(err error) string {
	switch domainerrors.CodeOf(err) {
	case "":
		return metrics.OutcomeSuccess
	case domainerrors.CodeInvalidCredentials, domainerrors.CodeValidationFailed:
		return metrics.OutcomeInvalidCredentials
	case domainerrors.CodeAccountInactive:
		return metrics.OutcomeInactive
	default:
		return metrics.OutcomeError
	}
}
