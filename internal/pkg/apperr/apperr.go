// Package apperr defines the error kinds shared by services and handlers.
package apperr

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const mysqlDuplicateEntry = 1062

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrStorage    = errors.New("storage error")
)

// Error carries a client-facing message next to its kind.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

func Auth(format string, args ...interface{}) error {
	return newError(ErrAuth, format, args...)
}

// Storage wraps a persistence or object store fault. The cause is kept for
// logging and never shown to clients.
func Storage(cause error, format string, args ...interface{}) error {
	e := newError(ErrStorage, format, args...)
	e.Cause = cause
	return e
}

// FromDB classifies a gorm error. Record-not-found becomes ErrNotFound with
// the given message, a unique key violation becomes ErrConflict and any other
// failure becomes ErrStorage.
func FromDB(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s", notFound)
	}
	if isDuplicateKey(err) {
		return Conflict("resource already exists")
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Storage(err, "database operation failed")
}

// Message returns the client-facing message of err, or fallback if err is
// not an *Error.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// isDuplicateKey reports a primary or unique key violation from either
// backend, whether or not the dialector translated it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
