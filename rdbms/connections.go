package rdbms

import (
	"fmt"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms/shared"
)

// OpenDbConnection opens a database connection using the supplied ConnectionDetails struct in c.
func OpenDbConnection(log logger.Logger, c *shared.ConnectionDetails) (db shared.Connector, err error) {
	log.Debug("opening connection type ", c.GetType(), " to ", c.ConnectString()) // don't log password details in c!
	switch c.GetType() {
	case constants.ConnectionTypeOracle:
		var dsn string
		dsn, err = shared.OracleConnectionDetailsToDSN(c.GetOracleConnectionDetails())
		if err != nil {
			return nil, err
		}
		db, err = NewOracleConnection(log, &shared.DsnConnectionDetails{Dsn: dsn})
	case constants.ConnectionTypeMockOracle:
		db = shared.NewMockConnection(log, constants.ConnectionTypeOracle)
	default:
		err = fmt.Errorf("unsupported database type, %q", c.Type)
	}
	return
}
