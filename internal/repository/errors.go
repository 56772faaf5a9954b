package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/stayease/pg-manager/internal/engine"
)

// notFound translates the driver's no-rows sentinel into the engine's
// taxonomy so that missing and foreign-owned rows are indistinguishable
// to callers.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return engine.ErrNotFound
	}
	return err
}

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062), e.g. a second rent record for the same tenant and month
// racing past the pre-check.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
