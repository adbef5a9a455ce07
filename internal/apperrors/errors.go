// Package apperrors defines the error kinds shared by repositories and handlers.
//
// Repositories return one of the kind sentinels (or an error wrapping one); the HTTP
// layer maps each kind to a fixed status code with errors.Is.
package apperrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTransient    = errors.New("store unavailable")
)

// Specific failures, each wrapping a kind.
var (
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrPostNotFound       = fmt.Errorf("%w: post not found", ErrNotFound)
	ErrCommentNotFound    = fmt.Errorf("%w: comment not found", ErrNotFound)
	ErrSelfFollow         = fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	ErrAlreadyFollowing   = fmt.Errorf("%w: already following this user", ErrConflict)
	ErrNotFollowing       = fmt.Errorf("%w: not following this user", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// Validation returns a validation error carrying msg.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Conflict returns a conflict error carrying msg.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Message strips the kind prefix from a wrapped error so that clients see
// "post not found" rather than "not found: post not found".
func Message(err error) string {
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrUnauthorized, ErrForbidden, ErrTransient} {
		if errors.Is(err, kind) {
			msg := err.Error()
			prefix := kind.Error() + ": "
			if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
				return msg[len(prefix):]
			}
			return msg
		}
	}
	return err.Error()
}

// Postgres SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// FromStore classifies an error returned by gorm or the underlying driver.
// Errors that already carry a kind are returned unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if isKind(err) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: record not found", ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced record does not exist", ErrNotFound)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case pgErr.Code == pgForeignKeyViolation:
			return fmt.Errorf("%w: referenced record does not exist", ErrNotFound)
		case pgErr.Code == pgCheckViolation:
			return fmt.Errorf("%w: %v", ErrValidation, err)
		case len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:3] == "57P"):
			// connection exceptions and operator intervention (admin shutdown etc.)
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return err
	}

	if isTransient(err) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return err
}

func isKind(err error) bool {
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrUnauthorized, ErrForbidden, ErrTransient} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func isTransient(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
