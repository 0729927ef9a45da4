package repositories_test

import (
	"errors"
	"fmt"
	"testing"

	"storefront/internal/repositories"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "sqlstate insufficient privilege",
			err:  &pgconn.PgError{Code: "42501", Message: "new row violates row-level security policy for table \"products\""},
			want: repositories.ErrPermissionDenied,
		},
		{
			name: "sqlstate undefined table",
			err:  fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01", Message: "relation \"products\" does not exist"}),
			want: repositories.ErrStoreUnavailable,
		},
		{
			name: "permission text fallback",
			err:  errors.New("permission denied for table messages"),
			want: repositories.ErrPermissionDenied,
		},
		{
			name: "policy text fallback",
			err:  errors.New("violates policy"),
			want: repositories.ErrPermissionDenied,
		},
		{
			name: "sqlite missing table",
			err:  errors.New("no such table: products"),
			want: repositories.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repositories.ClassifyError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error stays in the chain")
		})
	}
}

func TestClassifyErrorLeavesOtherErrorsAlone(t *testing.T) {
	assert.NoError(t, repositories.ClassifyError(nil))

	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	got := repositories.ClassifyError(pgErr)
	assert.Same(t, pgErr, got)

	plain := errors.New("connection reset by peer")
	got = repositories.ClassifyError(plain)
	assert.False(t, errors.Is(got, repositories.ErrPermissionDenied))
	assert.False(t, errors.Is(got, repositories.ErrStoreUnavailable))
}
