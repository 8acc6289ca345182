package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want duplicateColumn
	}{
		{name: "nil", err: nil, want: duplicateNone},
		{
			name: "email constraint",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_email"},
			want: duplicateEmail,
		},
		{
			name: "username constraint wrapped",
			err:  fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_accounts_username"}),
			want: duplicateUsername,
		},
		{
			name: "detail names column",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, Detail: "Key (email)=(ana@x.com) already exists."},
			want: duplicateEmail,
		},
		{
			name: "primary key collision",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_pkey"},
			want: duplicateUnknown,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation, ConstraintName: "uq_accounts_email"},
			want: duplicateNone,
		},
		{name: "translated by gorm", err: errors.Wrap(gorm.ErrDuplicatedKey, "create"), want: duplicateUnknown},
		{
			name: "text only",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "uq_accounts_username"`),
			want: duplicateUsername,
		},
		{name: "unrelated", err: errors.New("connection reset by peer"), want: duplicateNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyUniqueViolation(tt.err))
		})
	}
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.False(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isNotNullConstraintViolation(errors.New("null value")))
}
