package pgerr_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"brokerage/internal/adapters/out/postgres/pgerr"
	"brokerage/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	notFound := errs.NewObjectNotFoundError("vehicle", "1")

	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{name: "duplicate key", err: gorm.ErrDuplicatedKey, want: errs.KindConflict},
		{name: "bad connection", err: fmt.Errorf("exec: %w", driver.ErrBadConn), want: errs.KindStoreUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: errs.KindStoreUnavailable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: errs.KindStoreUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, want: errs.KindUnknown},
		{name: "typed error", err: notFound, want: errs.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pgerr.Classify("op", tt.err)

			assert.Equal(t, tt.want, errs.KindOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_KeepsDriverError(t *testing.T) {
	got := pgerr.Classify("get request", fmt.Errorf("query: %w", &pgconn.PgError{Code: "57P01", Message: "terminating"}))

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, got, &pgErr)
	assert.Equal(t, "57P01", pgErr.Code)
	assert.ErrorIs(t, got, errs.ErrStoreUnavailable)
}

func TestClassify_PassesThrough(t *testing.T) {
	assert.NoError(t, pgerr.Classify("op", nil))
	assert.Same(t, context.Canceled, pgerr.Classify("op", context.Canceled))

	notFound := errs.NewObjectNotFoundError("driver", "1")
	assert.Same(t, error(notFound), pgerr.Classify("op", notFound))

	plain := errors.New("boom")
	got := pgerr.Classify("load", plain)
	assert.ErrorIs(t, got, plain)
	assert.Contains(t, got.Error(), "load")
}
