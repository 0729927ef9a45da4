package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrPermissionDenied is returned when the store's access policy rejects the caller.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrStoreUnavailable is returned when the store schema has not been created.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned when an update targets a row that does not exist.
	ErrNotFound = errors.New("not found")
)

const (
	sqlStateInsufficientPrivilege = "42501"
	sqlStateUndefinedTable        = "42P01"
)

// ClassifyError tags a store error with ErrPermissionDenied or ErrStoreUnavailable.
// SQLSTATE codes are preferred; drivers without them fall back to message text.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateInsufficientPrivilege:
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case sqlStateUndefinedTable:
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission") || strings.Contains(msg, "policy"):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case strings.Contains(msg, "no such table"),
		strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}
