package rdbms

import (
	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms/shared"
	"golang.org/x/net/context"
)

// SqlQuery executes sqltext and sends the column names followed by each row to i.
func SqlQuery(ctx context.Context, log logger.Logger, db shared.Connector, sqltext string, i shared.SqlResultHandler) error {
	rows, err := db.QueryContext(ctx, sqltext)
	if err != nil {
		return err
	}
	defer func() {
		_ = rows.Close()
	}()
	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrap(err, "error fetching columns")
	}
	log.Debug("fetched columns ", cols)
	// Scan the values dynamically.
	scanPtrs := make([]interface{}, len(cols))
	scanVals := make([]interface{}, len(cols))
	for idx := range cols { // for each column...
		scanPtrs[idx] = &scanVals[idx]
	}
	// Build and send the header.
	header := make([]interface{}, len(cols))
	for idx := range cols {
		header[idx] = cols[idx]
	}
	if err = i.HandleHeader(header); err != nil {
		return err
	}
	// Send the rows via callback interface.
	for rows.Next() {
		if err := ctx.Err(); err != nil { // quit if asked to...
			return err
		}
		if err := rows.Scan(scanPtrs...); err != nil {
			return errors.Wrap(err, "error scanning row")
		}
		row := make([]interface{}, len(cols))
		copy(row, scanVals)
		if err = i.HandleRow(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// RowCollector is a SqlResultHandler that keeps everything it is given.
type RowCollector struct {
	Header []interface{}
	Rows   [][]interface{}
}

func (r *RowCollector) HandleHeader(i []interface{}) error {
	r.Header = i
	return nil
}

func (r *RowCollector) HandleRow(i []interface{}) error {
	r.Rows = append(r.Rows, i)
	return nil
}
