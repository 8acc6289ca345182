package postgres

import (
	"strings"

	"accounts/internal/infra/persistence/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// duplicateColumn identifies which unique column a write collided with.
type duplicateColumn int

const (
	duplicateNone duplicateColumn = iota
	duplicateEmail
	duplicateUsername
	// duplicateUnknown is a unique violation whose constraint could not be read,
	// e.g. when the dialector translated it to gorm.ErrDuplicatedKey.
	duplicateUnknown
)

// classifyUniqueViolation inspects a write error for a unique-constraint violation.
func classifyUniqueViolation(err error) duplicateColumn {
	if err == nil {
		return duplicateNone
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgerrcode.UniqueViolation {
			return duplicateNone
		}

		return columnFromConstraint(pgErr.ConstraintName + " " + pgErr.Detail)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateUnknown
	}

	// Drivers that surface only text, e.g. "duplicate key value violates unique constraint \"uq_accounts_email\"".
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
		return columnFromConstraint(msg)
	}

	return duplicateNone
}

func columnFromConstraint(text string) duplicateColumn {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, model.ConstraintAccountsEmail), strings.Contains(text, "(email)"):
		return duplicateEmail
	case strings.Contains(text, model.ConstraintAccountsUsername), strings.Contains(text, "(username)"):
		return duplicateUsername
	default:
		return duplicateUnknown
	}
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.NotNullViolation
	}

	return false
}
