package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestGetRequestID(t *testing.T) {
	c := newEchoContext()

	fallback := GetRequestID(c)
	_, err := uuid.Parse(fallback)
	assert.NoError(t, err)

	SetRequestID(c, "req-42")
	assert.Equal(t, "req-42", GetRequestID(c))
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))
	assert.Equal(t, "req-42", GetRequestIDFromContext(WithRequestID(context.Background(), "req-42")))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-42"))

	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestAccountID(t *testing.T) {
	c := newEchoContext()

	_, ok := GetAccountID(c)
	assert.False(t, ok)
	_, ok = GetAccountIDFromContext(c.Request().Context())
	assert.False(t, ok)

	id := uuid.New()
	SetAccountID(c, id)

	got, ok := GetAccountID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	got, ok = GetAccountIDFromContext(c.Request().Context())
	assert.True(t, ok)
	assert.Equal(t, id, got)

	SetAccountID(c, uuid.Nil)
	_, ok = GetAccountID(c)
	assert.False(t, ok)
}
