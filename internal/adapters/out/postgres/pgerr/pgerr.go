// Package pgerr maps PostgreSQL and GORM failures onto the errs taxonomy so
// the application layer can classify them without knowing the driver.
package pgerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"brokerage/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE classes that mean the server cannot serve the statement right now.
var unavailableStates = []string{
	"08",    // connection exception
	"53300", // too_many_connections
	"57P01", // admin_shutdown
	"57P02", // crash_shutdown
	"57P03", // cannot_connect_now
}

// Classify wraps err for operation. Typed errs values and context errors pass
// through unchanged, duplicate keys become Conflict and connectivity
// failures become StoreUnavailable.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errs.KindOf(err) != errs.KindUnknown {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictErrorWithCause(operation, err)
	case IsUnavailable(err):
		return errs.NewStoreUnavailableError(operation, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// IsUnavailable reports whether err means the database could not be reached
// or refused the connection.
func IsUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, state := range unavailableStates {
			if strings.HasPrefix(pgErr.Code, state) {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}
