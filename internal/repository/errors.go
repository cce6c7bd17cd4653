// Package repository defines the MySQL data access layer and the error
// values shared across repositories.  Handlers translate these sentinels
// into HTTP statuses in one place.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts to write a row whose
// program lies outside their scope.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete cannot proceed because other rows
// still depend on the target (e.g. a student with consultation history).
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when the target row is absent or not visible to
// the caller.  The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// ErrDuplicate wraps unique-key violations (duplicate student number,
// employee id or username).
var ErrDuplicate = errors.New("duplicate entry")

const (
	mysqlDuplicateEntry = 1062
	mysqlRowReferenced  = 1451
)

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlRowReferenced:
			return ErrConflict
		}
	}
	return err
}
