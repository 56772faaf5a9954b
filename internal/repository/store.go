// Package repository implements the MySQL-backed store for the PG
// inventory, tenants and the rent ledger.  Ownership is enforced in
// SQL by joining every lookup through the pgs table and filtering on
// owner_id; a row that exists but is owned by someone else scans as no
// rows, which surfaces as the engine's not-found error.
package repository

import (
	"context"
	"database/sql"

	"github.com/stayease/pg-manager/internal/engine"
)

// Queryer is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting every query run equally inside and outside a transaction.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the production implementation of engine.Store.  Outside a
// transaction its queries run directly against the pool.
type Store struct {
	queries
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{queries: queries{q: db}, db: db}
}

// DB exposes the underlying handle for auth repositories and health checks.
func (s *Store) DB() *sql.DB { return s.db }

// WithinTx runs fn inside one transaction.  Any error from fn rolls
// everything back; the commit error, if any, is returned to the caller.
func (s *Store) WithinTx(ctx context.Context, fn func(engine.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&queries{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// queries holds every entity operation so the same code serves both
// Store and the transaction passed to WithinTx callbacks.
type queries struct {
	q Queryer
}
