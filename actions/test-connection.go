package actions

import (
	"github.com/relloyd/hptransform/config"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms"
	"golang.org/x/net/context"
)

// RunTestConnection connects to the configured database and runs a trivial query.
func RunTestConnection(ctx context.Context, log logger.Logger, cfg *config.Config, open SessionOpener) (map[string]string, error) {
	s, err := open(ctx, log, cfg.GetConnectionDetails())
	if err != nil {
		return nil, err
	}
	defer s.Close()
	rows := &rdbms.RowCollector{}
	if err = s.Query(ctx, constants.TestConnectionSql, rows); err != nil {
		return nil, err
	}
	log.Debug("test connection returned ", rows.Rows)
	return map[string]string{"status": constants.JobStatusSuccess}, nil
}
