// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/dberr"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: constraint,
	}
}

/*
TestIsUniqueViolation covers SQLSTATE and constraint-name matching.
*/
func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		expected   bool
	}{
		{"matching_constraint", uniqueViolation("account_email_key"), "account_email_key", true},
		{"any_constraint", uniqueViolation("account_email_key"), "", true},
		{"different_constraint", uniqueViolation("account_email_key"), "account_username_key", false},
		{"wrapped", errors.Join(errors.New("insert failed"), uniqueViolation("inventory_item_owner_sku_key")), "inventory_item_owner_sku_key", true},
		{"other_sqlstate", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "", false},
		{"plain_error", errors.New("boom"), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dberr.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}

/*
TestWrap verifies the classification of database errors into app errors.
*/
func TestWrap(t *testing.T) {
	t.Run("nil_passthrough", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil))
	})

	t.Run("no_rows_becomes_not_found", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("unique_violation_becomes_conflict", func(t *testing.T) {
		err := dberr.Wrap(uniqueViolation("account_email_key"))
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("unknown_becomes_internal", func(t *testing.T) {
		err := dberr.Wrap(errors.New("connection reset"))
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	})

	// Stores wrap their own context around the driver error before handing
	// it to Wrap; both layers must stay reachable for logging.
	t.Run("store_context_preserved", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := dberr.Wrap(fmt.Errorf("postgres_account_repo_find_failed: %w", cause))

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INTERNAL_ERROR", ae.Code)
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, ae.Cause.Error(), "postgres_account_repo_find_failed")
	})

	t.Run("wrapped_unique_violation_still_conflicts", func(t *testing.T) {
		err := dberr.Wrap(fmt.Errorf("postgres_inventory_repo_create_failed: %w",
			uniqueViolation("inventory_item_owner_sku_key")))
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})
}
