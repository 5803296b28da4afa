package shared

import (
	"context"

	"github.com/relloyd/hptransform/logger"
)

// Connector abstracts all access to Go SQL functionality.
type Connector interface {
	Exec(query string, args ...interface{}) (Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (*HpRows, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*HpRows, error)
	PingContext(ctx context.Context) error
	Close()
	GetType() string
}

// Result abstracts the return value of Exec so we can use both relloyd/go-sql and the native Go SQL library.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// SqlResultHandler receives the column names and then each row of a query.
type SqlResultHandler interface {
	HandleHeader(i []interface{}) error
	HandleRow(i []interface{}) error
}

// Oracle plugin interfaces.

type OracleConnector interface {
	NewOracleConnection(log logger.Logger, d *DsnConnectionDetails) (Connector, error)
}
