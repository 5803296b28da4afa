package shared

import (
	"context"
	"sync"

	"github.com/relloyd/hptransform/logger"
)

// MockConnection is a Connector that executes nothing.
// It records every statement it is given so callers can validate the SQL sent to the database.
type MockConnection struct {
	DbType string
	// ExecHook, when set, is called before a statement is recorded and its error is returned to the caller.
	ExecHook func(query string) error
	// Rows are returned by Query and QueryContext.
	Rows    [][]interface{}
	Columns []string
	// PingErr is returned by PingContext.
	PingErr error
	mu      sync.Mutex
	stmts   []string
	closed  bool
}

func NewMockConnection(log logger.Logger, dbType string) *MockConnection {
	log.Debug("New mock connection...")
	return &MockConnection{DbType: dbType}
}

func (m *MockConnection) Exec(query string, args ...interface{}) (Result, error) {
	return m.ExecContext(context.Background(), query, args...)
}

func (m *MockConnection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ExecHook != nil {
		if err := m.ExecHook(query); err != nil {
			return nil, err
		}
	}
	m.record(query)
	return mockResult{}, nil
}

func (m *MockConnection) Query(query string, args ...interface{}) (*HpRows, error) {
	return m.QueryContext(context.Background(), query, args...)
}

func (m *MockConnection) QueryContext(ctx context.Context, query string, args ...interface{}) (*HpRows, error) {
	if _, err := m.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return &HpRows{isMock: true, mockRows: m.Rows, mockCols: m.Columns}, nil
}

func (m *MockConnection) PingContext(ctx context.Context) error {
	return m.PingErr
}

func (m *MockConnection) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *MockConnection) GetType() string {
	return m.DbType
}

// Statements returns a copy of the statements executed so far, in order.
func (m *MockConnection) Statements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	retval := make([]string, len(m.stmts))
	copy(retval, m.stmts)
	return retval
}

// IsClosed returns true once Close has been called.
func (m *MockConnection) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockConnection) record(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stmts = append(m.stmts, query)
}

type mockResult struct{}

func (mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (mockResult) RowsAffected() (int64, error) {
	return 0, nil
}
