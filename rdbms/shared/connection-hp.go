package shared

import (
	"context"
	"database/sql"
	"errors"

	relloyd "github.com/relloyd/go-sql/database/sql"
)

// HpConnection is a wrapper around:
// 1) Go native sql.DB
// 2) relloyd/go-sql.DB
// Once PinSingleConnection has been called every statement runs on the same physical connection.
type HpConnection struct {
	DbRelloyd   *relloyd.DB
	DbSql       *sql.DB
	DbType      string
	connRelloyd *relloyd.Conn
	connSql     *sql.Conn
}

var errNotConfigured = errors.New("HpConnection was not configured correctly: both DbSql and DbRelloyd are missing")

// PinSingleConnection reserves one connection from the pool for all further statements so that session
// state, like the current schema, applies to every statement executed.
// A pinned connection that breaks returns errors instead of being replaced by a fresh one.
func (c *HpConnection) PinSingleConnection(ctx context.Context) (err error) {
	if c.connRelloyd != nil || c.connSql != nil { // if we are already pinned...
		return nil
	}
	if c.DbRelloyd != nil {
		c.connRelloyd, err = c.DbRelloyd.Conn(ctx)
	} else if c.DbSql != nil {
		c.connSql, err = c.DbSql.Conn(ctx)
	} else {
		err = errNotConfigured
	}
	return
}

// IsPinned returns true if statements run on a reserved connection.
func (c *HpConnection) IsPinned() bool {
	return c.connRelloyd != nil || c.connSql != nil
}

// Connector:

func (c *HpConnection) Exec(query string, args ...interface{}) (Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *HpConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	switch {
	case c.connRelloyd != nil:
		return c.connRelloyd.ExecContext(ctx, query, args...)
	case c.connSql != nil:
		return c.connSql.ExecContext(ctx, query, args...)
	case c.DbRelloyd != nil:
		return c.DbRelloyd.ExecContext(ctx, query, args...)
	case c.DbSql != nil:
		return c.DbSql.ExecContext(ctx, query, args...)
	}
	return nil, errNotConfigured
}

func (c *HpConnection) Query(query string, args ...interface{}) (*HpRows, error) {
	return c.QueryContext(context.Background(), query, args...)
}

func (c *HpConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*HpRows, error) {
	switch {
	case c.connRelloyd != nil:
		r, err := c.connRelloyd.QueryContext(ctx, query, args...)
		return &HpRows{rowsRelloyd: r, useRelloyd: true}, err
	case c.connSql != nil:
		r, err := c.connSql.QueryContext(ctx, query, args...)
		return &HpRows{rowsSql: r}, err
	case c.DbRelloyd != nil:
		r, err := c.DbRelloyd.QueryContext(ctx, query, args...)
		return &HpRows{rowsRelloyd: r, useRelloyd: true}, err
	case c.DbSql != nil:
		r, err := c.DbSql.QueryContext(ctx, query, args...)
		return &HpRows{rowsSql: r}, err
	}
	return nil, errNotConfigured
}

func (c *HpConnection) PingContext(ctx context.Context) error {
	switch {
	case c.connRelloyd != nil:
		return c.connRelloyd.PingContext(ctx)
	case c.connSql != nil:
		return c.connSql.PingContext(ctx)
	case c.DbRelloyd != nil:
		return c.DbRelloyd.PingContext(ctx)
	case c.DbSql != nil:
		return c.DbSql.PingContext(ctx)
	}
	return errNotConfigured
}

// Close releases the pinned connection, if any, and closes the pool.
func (c *HpConnection) Close() {
	if c.connRelloyd != nil {
		_ = c.connRelloyd.Close()
		c.connRelloyd = nil
	}
	if c.connSql != nil {
		_ = c.connSql.Close()
		c.connSql = nil
	}
	if c.DbRelloyd != nil {
		_ = c.DbRelloyd.Close()
	} else if c.DbSql != nil {
		_ = c.DbSql.Close()
	}
}

func (c *HpConnection) GetType() string {
	return c.DbType
}

// Rows:

type HpRows struct {
	rowsRelloyd *relloyd.Rows
	rowsSql     *sql.Rows
	useRelloyd  bool
	mockRows    [][]interface{}
	mockCols    []string
	mockIdx     int
	isMock      bool
}

func (r *HpRows) Close() error {
	if r.isMock {
		return nil
	} else if r.useRelloyd {
		return r.rowsRelloyd.Close()
	} else {
		return r.rowsSql.Close()
	}
}

func (r *HpRows) Columns() ([]string, error) {
	if r.isMock {
		return r.mockCols, nil
	} else if r.useRelloyd {
		return r.rowsRelloyd.Columns()
	} else {
		return r.rowsSql.Columns()
	}
}

func (r *HpRows) Err() error {
	if r.isMock {
		return nil
	} else if r.useRelloyd {
		return r.rowsRelloyd.Err()
	} else {
		return r.rowsSql.Err()
	}
}

func (r *HpRows) Next() bool {
	if r.isMock {
		if r.mockIdx < len(r.mockRows) {
			r.mockIdx++
			return true
		}
		return false
	} else if r.useRelloyd {
		return r.rowsRelloyd.Next()
	} else {
		return r.rowsSql.Next()
	}
}

// Scan copies the current row into dest.
// Mock rows only support *interface{} destinations.
func (r *HpRows) Scan(dest ...interface{}) error {
	if r.isMock {
		row := r.mockRows[r.mockIdx-1]
		if len(dest) != len(row) {
			return errors.New("mock rows: wrong number of scan destinations")
		}
		for i := range dest {
			p, ok := dest[i].(*interface{})
			if !ok {
				return errors.New("mock rows: scan destination must be *interface{}")
			}
			*p = row[i]
		}
		return nil
	} else if r.useRelloyd {
		return r.rowsRelloyd.Scan(dest...)
	} else {
		return r.rowsSql.Scan(dest...)
	}
}
