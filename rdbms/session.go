package rdbms

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms/shared"
	"golang.org/x/net/context"
)

// DbError is returned when the database rejects a statement.
type DbError struct {
	Query   string
	Message string // message supplied by the database, if any
	Cause   error
}

func newDbError(query string, cause error) *DbError {
	e := &DbError{Query: query, Cause: cause}
	if cause != nil {
		e.Message = strings.TrimSpace(cause.Error())
	}
	return e
}

func (e *DbError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf(`Query "%s" failed`, e.Query)
	}
	return fmt.Sprintf(`Query failed with message: "%s"`, e.Message)
}

func (e *DbError) Unwrap() error {
	return e.Cause
}

// IsUserError marks failing SQL as something the user has to fix.
func (e *DbError) IsUserError() bool {
	return true
}

// Session owns a single database connection for the lifetime of a transformation.
type Session struct {
	log logger.Logger
	db  shared.Connector
}

// OpenSession connects to the database described by c and switches to c.Schema when it is set.
func OpenSession(ctx context.Context, log logger.Logger, c *shared.ConnectionDetails) (*Session, error) {
	log.Info(fmt.Sprintf(`Connecting to DSN "%s"`, c.ConnectString()))
	db, err := OpenDbConnection(log, c)
	if err != nil {
		return nil, hperrors.WrapUserError(err, `Cannot connect to host "%s"`, c.Host)
	}
	return NewSession(ctx, log, db, c.Schema)
}

// NewSession wraps an open connection.
// The session is pinned to one physical connection since the current schema is session state.
func NewSession(ctx context.Context, log logger.Logger, db shared.Connector, schema string) (*Session, error) {
	if hp, ok := db.(*shared.HpConnection); ok {
		if err := hp.PinSingleConnection(ctx); err != nil {
			hp.Close()
			return nil, errors.Wrap(err, "unable to reserve a database connection")
		}
	}
	s := &Session{log: log, db: db}
	if schema != "" {
		log.Info(fmt.Sprintf(`Switching schema to "%s"`, schema))
		if err := s.Execute(ctx, fmt.Sprintf("ALTER SESSION SET CURRENT_SCHEMA = %s", EscapeIdentifier(schema))); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Execute runs one statement.
// Failures are returned as *DbError.
func (s *Session) Execute(ctx context.Context, sql string) error {
	s.log.Trace("executing: ", sql)
	if _, err := s.db.ExecContext(ctx, sql); err != nil {
		return newDbError(sql, err)
	}
	return nil
}

// Query runs sql and streams the results to h.
// Failures are returned as *DbError.
func (s *Session) Query(ctx context.Context, sql string, h shared.SqlResultHandler) error {
	if err := SqlQuery(ctx, s.log, s.db, sql, h); err != nil {
		return newDbError(sql, err)
	}
	return nil
}

// Close releases the connection.
func (s *Session) Close() {
	s.db.Close()
}
