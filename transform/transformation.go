// Package transform runs the SQL scripts of a transformation against a database session.
package transform

import (
	"context"
	"fmt"

	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/sqlscript"
	"github.com/relloyd/hptransform/stats"
)

// Block is a named, ordered group of codes.
type Block struct {
	Name  string `mapstructure:"name" errorTxt:"name" mandatory:"yes"`
	Codes []Code `mapstructure:"codes" errorTxt:"codes" mandatory:"yes"`
}

// Code is a named, ordered group of scripts within a block.
type Code struct {
	Name    string   `mapstructure:"name" errorTxt:"name" mandatory:"yes"`
	Scripts []string `mapstructure:"script" errorTxt:"script" mandatory:"yes"`
}

// StatementExecutor runs one SQL statement.
type StatementExecutor interface {
	Execute(ctx context.Context, sql string) error
}

// Error is returned when a script fails.
type Error struct {
	BlockName string
	Excerpt   string
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf(`Query "%s" in "%s" failed with error: "%s"`, e.Excerpt, e.BlockName, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUserError marks failing scripts as something the user has to fix.
func (e *Error) IsUserError() bool {
	return true
}

// Transformation executes blocks sequentially and stops at the first failing script.
type Transformation struct {
	log   logger.Logger
	db    StatementExecutor
	stats *stats.PipelineStats
}

func NewTransformation(log logger.Logger, db StatementExecutor, s *stats.PipelineStats) *Transformation {
	return &Transformation{log: log, db: db, stats: s}
}

// ProcessBlocks runs every script of every code of every block in order.
func (t *Transformation) ProcessBlocks(ctx context.Context, blocks []Block) error {
	for _, b := range blocks {
		if err := t.processBlock(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transformation) processBlock(ctx context.Context, b Block) error {
	t.log.Info(fmt.Sprintf(`Processing block "%s".`, b.Name))
	for _, c := range b.Codes {
		if err := t.processCode(ctx, b, c); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transformation) processCode(ctx context.Context, b Block, c Code) error {
	t.log.Info(fmt.Sprintf(`Processing code "%s".`, c.Name))
	for _, script := range c.Scripts {
		if err := t.processScript(ctx, b, script); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transformation) processScript(ctx context.Context, b Block, script string) error {
	if err := ctx.Err(); err != nil { // quit if asked to...
		return err
	}
	stmt := sqlscript.Normalize(script)
	t.stats.AddStatement(stmt.Kind.String())
	if stmt.Kind != sqlscript.KindExecutable {
		t.log.Debug("skipping ", stmt.Kind, " script: ", sqlscript.Excerpt(script))
		return nil
	}
	excerpt := sqlscript.Excerpt(script)
	t.log.Info(fmt.Sprintf(`Running query "%s".`, excerpt))
	if err := t.db.Execute(ctx, stmt.Text); err != nil {
		return &Error{BlockName: b.Name, Excerpt: excerpt, Cause: err}
	}
	return nil
}
