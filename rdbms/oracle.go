package rdbms

import (
	"fmt"
	"reflect"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
	pluginloader "github.com/relloyd/hptransform/plugin-loader"
	"github.com/relloyd/hptransform/rdbms/shared"
)

// NewOracleConnection opens a connection using the OCI driver found in the Oracle plugin.
// The main binary does not link the Oracle client libraries.
func NewOracleConnection(log logger.Logger, d *shared.DsnConnectionDetails) (shared.Connector, error) {
	exports, err := pluginloader.LoadPluginExports(constants.HpPluginOracle)
	if err != nil {
		return nil, err
	}
	i, ok := exports.(shared.OracleConnector)
	if !ok {
		r := reflect.TypeOf(exports)
		return nil, fmt.Errorf("plugin %v does not implement the required interface: OracleConnector: %v", constants.HpPluginOracle, r.String())
	}
	return i.NewOracleConnection(log, d)
}
