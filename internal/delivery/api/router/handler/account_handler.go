package handler

import (
	"log/slog"
	"net/http"

	"accounts/internal/delivery/api/response"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler serves account administration for signed-in users.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// ListAccountsRequest selects a page of accounts.
type ListAccountsRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// CreateAccountRequest represents the request body for creating an account
type CreateAccountRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,max=120"`
	Username string  `json:"username" validate:"required,max=80"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}

// UpdateAccountRequest is a partial update; omitted fields stay unchanged.
type UpdateAccountRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,max=120"`
	Username *string `json:"username" validate:"omitempty,max=80"`
	Password *string `json:"password"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}

func (h *AccountHandler) ListAccounts(c echo.Context) error {
	var req ListAccountsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid paging parameters")
	}

	out, err := h.accountUC.ListAccounts(c.Request().Context(), &usecase.ListAccountsInput{
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *AccountHandler) ListActiveAccounts(c echo.Context) error {
	accounts, err := h.accountUC.ListActiveAccounts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, accounts)
}

func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid account input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	account, err := h.accountUC.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, account)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.InvalidID(c)
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.InvalidID(c)
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid account input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	account, err := h.accountUC.UpdateAccount(c.Request().Context(), id, &usecase.UpdateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account)
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.InvalidID(c)
	}

	if err := h.accountUC.DeleteAccount(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleActive flips the account's active flag.
func (h *AccountHandler) ToggleActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.InvalidID(c)
	}

	account, err := h.accountUC.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, account)
}
