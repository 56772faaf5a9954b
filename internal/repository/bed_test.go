package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayease/pg-manager/internal/engine"
)

// stubConn serves canned driver responses.  The mysql driver reports
// rows changed rather than rows matched, so an UPDATE that re-submits
// the current values returns zero affected rows; this stub reproduces
// that without a database.
type stubConn struct {
	affected int64
	cols     []string
	rows     [][]driver.Value
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func (c *stubConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return driver.RowsAffected(c.affected), nil
}

func (c *stubConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	return &stubRows{cols: c.cols, data: c.rows}, nil
}

type stubRows struct {
	cols []string
	data [][]driver.Value
	i    int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.i])
	r.i++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use the connector") }

func stubStore(conn *stubConn) *Store {
	return NewStore(sql.OpenDB(stubConnector{conn: conn}))
}

var bedCols = []string{"id", "room_id", "bed_number", "is_occupied", "monthly_price", "pg_id"}

func TestUpdateBedUnchangedValuesSucceeds(t *testing.T) {
	// UPDATE matches the bed but changes nothing; the follow-up
	// ownership lookup finds it, so the update is a no-op, not a miss.
	conn := &stubConn{
		affected: 0,
		cols:     bedCols,
		rows:     [][]driver.Value{{int64(7), int64(3), "B1", false, 4500.0, int64(1)}},
	}
	s := stubStore(conn)

	err := s.UpdateBed(context.Background(), 7, 1, "B1", 4500)
	require.NoError(t, err)
}

func TestUpdateBedMissingBedNotFound(t *testing.T) {
	conn := &stubConn{affected: 0, cols: bedCols}
	s := stubStore(conn)

	err := s.UpdateBed(context.Background(), 99, 1, "B1", 4500)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestUpdateBedChangedValuesSucceeds(t *testing.T) {
	conn := &stubConn{affected: 1, cols: bedCols}
	s := stubStore(conn)

	err := s.UpdateBed(context.Background(), 7, 1, "B2", 4800)
	require.NoError(t, err)
}
