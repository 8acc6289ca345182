package errors_test

import (
	"fmt"
	"testing"

	"accounts/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrapKeepsMatchingAndRecordsStack(t *testing.T) {
	sentinel := &codedError{code: "DUPLICATE_EMAIL"}

	tests := []struct {
		name    string
		wrap    func(error) error
		message string
	}{
		{name: "WithStack", wrap: errors.WithStack, message: "DUPLICATE_EMAIL"},
		{name: "Wrap", wrap: func(err error) error { return errors.Wrap(err, "create account") }, message: "create account: DUPLICATE_EMAIL"},
		{name: "Wrapf", wrap: func(err error) error { return errors.Wrapf(err, "update %s", "account") }, message: "update account: DUPLICATE_EMAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wrap(sentinel)

			assert.Equal(t, tt.message, err.Error())
			assert.True(t, errors.Is(err, sentinel))

			var target *codedError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, "DUPLICATE_EMAIL", target.code)

			assert.Contains(t, fmt.Sprintf("%+v", err), "TestWrapKeepsMatchingAndRecordsStack")
		})
	}
}

func TestNilPassesThrough(t *testing.T) {
	assert.NoError(t, errors.WithStack(nil))
	assert.NoError(t, errors.Wrap(nil, "ignored"))
	assert.NoError(t, errors.Join(nil, nil))
}

func TestJoinMatchesEveryBranch(t *testing.T) {
	first := errors.New("migrate")
	second := errors.Errorf("close: %d", 1)

	joined := errors.Join(first, second)

	assert.True(t, errors.Is(joined, first))
	assert.True(t, errors.Is(joined, second))
	assert.Contains(t, fmt.Sprintf("%+v", second), "TestJoinMatchesEveryBranch")
}
