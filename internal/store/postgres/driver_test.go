package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/angelofallars/crewdesk/internal/logger"
)

// fakeDriver is a database/sql driver that keeps executed rows pending
// until their transaction commits. Exec number failOn (1-based) fails.
type fakeDriver struct {
	mu sync.Mutex

	failOn int
	execs  int

	statements []string
	committed  [][]driver.Value
	commits    int
	rollbacks  int

	columns []string
	rows    [][]driver.Value
}

func newFakeDB(t *testing.T, d *fakeDriver) *DB {
	t.Helper()
	sqlDB := sql.OpenDB(d)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &DB{
		DB:      sqlx.NewDb(sqlDB, "postgres"),
		timeout: time.Second,
		logger:  logger.NewNop(),
	}
}

func (d *fakeDriver) Connect(context.Context) (driver.Conn, error) { return &fakeConn{d: d}, nil }

func (d *fakeDriver) Driver() driver.Driver { return d }

func (d *fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{d: d}, nil }

func (d *fakeDriver) snapshot() (committed [][]driver.Value, commits, rollbacks int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([][]driver.Value(nil), d.committed...), d.commits, d.rollbacks
}

type fakeConn struct {
	d       *fakeDriver
	inTx    bool
	pending [][]driver.Value
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	c.d.mu.Lock()
	c.d.statements = append(c.d.statements, query)
	c.d.mu.Unlock()
	return &fakeStmt{c: c}, nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.inTx = true
	c.pending = nil
	return c, nil
}

func (c *fakeConn) Commit() error {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.committed = append(c.d.committed, c.pending...)
	c.d.commits++
	c.inTx, c.pending = false, nil
	return nil
}

func (c *fakeConn) Rollback() error {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.rollbacks++
	c.inTx, c.pending = false, nil
	return nil
}

type fakeStmt struct {
	c *fakeConn
}

func (s *fakeStmt) Close() error { return nil }

func (s *fakeStmt) NumInput() int { return -1 }

func (s *fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	d := s.c.d
	d.mu.Lock()
	d.execs++
	failed := d.failOn != 0 && d.execs == d.failOn
	d.mu.Unlock()

	if failed {
		return nil, errors.New(`duplicate key value violates unique constraint "event_crew_job_orders_pkey"`)
	}
	row := append([]driver.Value(nil), args...)
	if s.c.inTx {
		s.c.pending = append(s.c.pending, row)
		return driver.RowsAffected(1), nil
	}
	d.mu.Lock()
	d.committed = append(d.committed, row)
	d.mu.Unlock()
	return driver.RowsAffected(1), nil
}

func (s *fakeStmt) Query([]driver.Value) (driver.Rows, error) {
	d := s.c.d
	d.mu.Lock()
	defer d.mu.Unlock()
	return &fakeRows{columns: d.columns, rows: d.rows}, nil
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	next    int
}

func (r *fakeRows) Columns() []string { return r.columns }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}
