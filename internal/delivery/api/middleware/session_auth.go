package middleware

import (
	"log/slog"

	"accounts/internal/delivery/api/session"
	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionAuth guards routes by the account bound to the session cookie.
type SessionAuth struct {
	binder *session.Binder
	logger *slog.Logger
}

// NewSessionAuth is the constructor for SessionAuth.
func NewSessionAuth(binder *session.Binder, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{binder: binder, logger: logger}
}

// RequireLogin rejects anonymous requests with 401. For signed-in requests it
// exposes the account id to handlers and usecases and restarts the inactivity timeout.
func (m *SessionAuth) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.binder.Load(c)
		if err != nil {
			return errors.WithStack(err)
		}

		accountID, ok := m.binder.CurrentAccountID(sess)
		if !ok {
			return errors.WithStack(domainerrors.ErrUnauthorized)
		}

		if err := m.binder.Touch(c, sess); err != nil {
			return err
		}

		deliverycontext.SetAccountID(c, accountID)
		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("account_id", accountID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, logger)))

		return next(c)
	}
}

// GuestOnly rejects requests that already carry a signed-in session with 403.
func (m *SessionAuth) GuestOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.binder.AccountID(c); ok {
			return errors.WithStack(domainerrors.ErrAlreadyAuthenticated)
		}

		return next(c)
	}
}

// GetAccountID returns the account set by RequireLogin.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetAccountID(c)
}
