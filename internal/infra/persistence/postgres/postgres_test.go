package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

type fakeStatter struct {
	mu    sync.Mutex
	stats sql.DBStats
}

func (f *fakeStatter) Stats() sql.DBStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stats
}

func (f *fakeStatter) addWait(count int64, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stats.WaitCount += count
	f.stats.WaitDuration += d
}

func TestReportPoolWait(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	prev := sql.DBStats{WaitCount: 3, WaitDuration: time.Millisecond}

	reportPoolWait(context.Background(), logger, prev, prev)
	assert.Empty(t, buf.String())

	reportPoolWait(context.Background(), logger, prev, sql.DBStats{WaitCount: 5, WaitDuration: 101 * time.Millisecond})
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "waitCountDelta=2")
	assert.Contains(t, buf.String(), "avgWait=50ms")
}

func TestMonitorDBPool_StopsWithContext(t *testing.T) {
	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	stats := &fakeStatter{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitorDBPool(ctx, logger, stats, 5*time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		stats.addWait(1, 80*time.Millisecond)

		return strings.Contains(buf.String(), "Postgres pool wait")
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestMonitorDBPool_DisabledInterval(t *testing.T) {
	monitorDBPool(context.Background(), slog.Default(), &fakeStatter{}, 0)
}
