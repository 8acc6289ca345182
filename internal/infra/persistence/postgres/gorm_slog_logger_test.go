package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"accounts/config"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturingGormLogger(debug bool) (logger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{Persistence: &config.PersistenceConfig{SlowQueryThreshold: 100 * time.Millisecond}}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg), &buf
}

func sqlFn() (string, int64) {
	return `SELECT * FROM "accounts" WHERE id = '1'`, 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("failed query", func(t *testing.T) {
		l, buf := newCapturingGormLogger(false)
		l.Trace(ctx, time.Now(), sqlFn, errors.New("connection refused"))

		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "GORM query failed")
	})

	t.Run("unique violation is a warning", func(t *testing.T) {
		l, buf := newCapturingGormLogger(false)
		l.Trace(ctx, time.Now(), sqlFn, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_email"})

		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "GORM query failed")
	})

	t.Run("record not found is ignored", func(t *testing.T) {
		l, buf := newCapturingGormLogger(false)
		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query", func(t *testing.T) {
		l, buf := newCapturingGormLogger(false)
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

		assert.Contains(t, buf.String(), "GORM slow query")
	})

	t.Run("statements only in debug", func(t *testing.T) {
		quiet, quietBuf := newCapturingGormLogger(false)
		quiet.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Empty(t, quietBuf.String())

		loud, loudBuf := newCapturingGormLogger(true)
		loud.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Contains(t, loudBuf.String(), "GORM query")
	})

	t.Run("silent mode", func(t *testing.T) {
		l, buf := newCapturingGormLogger(true)
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), sqlFn, errors.New("boom"))

		assert.Empty(t, buf.String())
	})
}
