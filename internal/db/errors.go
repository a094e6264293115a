package db

import (
	"strings"

	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// postgres SQLSTATE class 23: integrity_constraint_violation
const pgIntegrityClass = "23"

var ErrNotFound = errors.New("record not found")

// ConstraintError reports a write rejected by a store constraint (unique, foreign key, not null).
type ConstraintError struct {
	Err error
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// TranslateError maps driver and gorm errors onto ErrNotFound and *ConstraintError.
// Anything else is returned untouched.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, pgIntegrityClass) {
		return &ConstraintError{Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return &ConstraintError{Err: err}
	}

	return err
}
