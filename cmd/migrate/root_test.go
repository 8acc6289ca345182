package main

import (
	"bytes"
	"testing"

	"accounts/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	forced  int
	version uint
	dirty   bool
	failUp  error
	closed  bool
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	if f.failUp != nil {
		return f.failUp
	}
	f.version = 1

	return nil
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	f.version = 0

	return nil
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n

	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, nil
}

func (f *fakeMigrator) Force(version int) error {
	f.calls = append(f.calls, "force")
	f.forced = version
	f.version = uint(version)
	f.dirty = false

	return nil
}

func (f *fakeMigrator) Close() error {
	f.closed = true

	return nil
}

// run executes the CLI against fake and returns its output and the URL it was opened with.
func run(t *testing.T, fake *fakeMigrator, args ...string) (string, string, error) {
	t.Helper()

	var openedWith string
	cmd := newRootCmd(func(databaseURL string) (migrator, error) {
		openedWith = databaseURL

		return fake, nil
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), openedWith, err
}

func TestUp(t *testing.T) {
	fake := &fakeMigrator{}

	out, url, err := run(t, fake, "up", "--database-url", "postgres://localhost/accounts")

	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/accounts", url)
	assert.Equal(t, []string{"up"}, fake.calls)
	assert.Contains(t, out, "Schema version 1")
	assert.True(t, fake.closed)
}

func TestUp_ReadsDatabaseURLFromEnv(t *testing.T) {
	t.Setenv(databaseURLEnv, "postgres://env/accounts")

	_, url, err := run(t, &fakeMigrator{}, "up")

	require.NoError(t, err)
	assert.Equal(t, "postgres://env/accounts", url)
}

func TestUp_RequiresDatabaseURL(t *testing.T) {
	t.Setenv(databaseURLEnv, "")
	fake := &fakeMigrator{}

	_, _, err := run(t, fake, "up")

	require.Error(t, err)
	assert.Empty(t, fake.calls)
}

func TestUp_FailureStillCloses(t *testing.T) {
	fake := &fakeMigrator{failUp: errors.New("dirty database version 1")}

	_, _, err := run(t, fake, "up", "--database-url", "postgres://x")

	require.Error(t, err)
	assert.True(t, fake.closed)
}

func TestDown_RequiresConfirmation(t *testing.T) {
	fake := &fakeMigrator{version: 1}

	_, _, err := run(t, fake, "down", "--database-url", "postgres://x")
	require.Error(t, err)
	assert.Empty(t, fake.calls)

	_, _, err = run(t, fake, "down", "--yes", "--database-url", "postgres://x")
	require.NoError(t, err)
	assert.Equal(t, []string{"down"}, fake.calls)
}

func TestSteps(t *testing.T) {
	tests := []struct {
		name      string
		arg       string
		wantSteps int
		wantErr   bool
	}{
		{name: "forward", arg: "2", wantSteps: 2},
		{name: "backward", arg: "-1", wantSteps: -1},
		{name: "zero", arg: "0", wantErr: true},
		{name: "not a number", arg: "two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeMigrator{}

			_, _, err := run(t, fake, "steps", "--database-url", "postgres://x", "--", tt.arg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, fake.calls)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSteps, fake.steps)
		})
	}
}

func TestVersion_ReportsDirty(t *testing.T) {
	out, _, err := run(t, &fakeMigrator{version: 1, dirty: true}, "version", "--database-url", "postgres://x")

	require.NoError(t, err)
	assert.Contains(t, out, "Schema version 1 (dirty)")
}

func TestForce(t *testing.T) {
	fake := &fakeMigrator{version: 1, dirty: true}

	out, _, err := run(t, fake, "force", "1", "--database-url", "postgres://x")

	require.NoError(t, err)
	assert.Equal(t, 1, fake.forced)
	assert.Contains(t, out, "Schema version 1\n")
}
