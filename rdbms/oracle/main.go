package main

import (
	"github.com/pkg/errors"
	_ "github.com/relloyd/go-oci8"
	"github.com/relloyd/go-sql/database/sql"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms/shared"
)

// This plugin exports public symbol Exports with top-level functions bound to it.
// All functions that bind to this variable must live in here, not other files despite them
// belonging to the same main package. Code that loads the plugin is unable to successfully
// interface type check when functions live in other files.

type exports struct{}

var Exports exports

// ---------------------------------------------------------------------------------------------------------------------
// Oracle Connectivity via OCI Library
// ---------------------------------------------------------------------------------------------------------------------

func (v exports) NewOracleConnection(log logger.Logger, d *shared.DsnConnectionDetails) (shared.Connector, error) {
	oc, err := shared.OracleDsnToOracleConnectionDetails(d.Dsn) // for use in errors below with its String() method.
	if err != nil {
		return nil, err
	}
	conn := &shared.HpConnection{DbType: constants.ConnectionTypeOracle}
	conn.DbRelloyd, err = sql.Open("oci8", d.Dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open database %v", oc)
	}
	if err = conn.DbRelloyd.Ping(); err != nil {
		_ = conn.DbRelloyd.Close()
		return nil, errors.Wrapf(err, "unable to ping database %v", oc)
	}
	log.Info("Successful database connection to Oracle")
	return conn, nil
}
