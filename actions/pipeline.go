package actions

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/relloyd/hptransform/config"
	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/jobrunner"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/rdbms"
	"github.com/relloyd/hptransform/rdbms/shared"
	"github.com/relloyd/hptransform/stats"
	"github.com/relloyd/hptransform/transform"
	"github.com/rs/xid"
	"golang.org/x/net/context"
)

// SessionOpener opens the database session used by a run.
type SessionOpener func(ctx context.Context, log logger.Logger, c *shared.ConnectionDetails) (*rdbms.Session, error)

// Orchestrator moves the input tables into the database, runs the blocks and pulls the output tables back.
type Orchestrator struct {
	Log         logger.Logger
	Runner      jobrunner.JobRunner // chosen once per run
	Stats       *stats.PipelineStats
	OpenSession SessionOpener
}

// NewOrchestrator verifies the storage token and chooses the job backend enabled for it.
func NewOrchestrator(ctx context.Context, log logger.Logger, env *config.EnvConfig, s *stats.PipelineStats) (*Orchestrator, error) {
	policy, err := jobrunner.NewPollPolicy(env.PollPolicy, env.PollInterval)
	if err != nil {
		return nil, hperrors.WrapApplicationError(err, "%v", err)
	}
	httpClient := jobrunner.NewHttpClient(constants.HttpTimeoutDefault)
	storage := jobrunner.NewStorageApiClient(httpClient, env.StorageApiUrl, env.Token, env.RunId)
	runner, err := jobrunner.NewJobRunner(ctx, log, storage, jobrunner.Config{
		Token:      env.Token,
		RunId:      env.RunId,
		PollPolicy: policy,
		HttpClient: httpClient,
		Stats:      s,
	})
	if err != nil {
		return nil, err
	}
	return &Orchestrator{Log: log, Runner: runner, Stats: s, OpenSession: rdbms.OpenSession}, nil
}

// NewRunId returns runId, or a fresh guid when runId is empty.
func NewRunId(runId string) string {
	if runId == "" {
		return xid.New().String()
	}
	return runId
}

// RunTransformation runs the writer job per input table, then the blocks, then the extractor job per
// output table. The first failure stops the run.
func (o *Orchestrator) RunTransformation(ctx context.Context, cfg *config.Config) error {
	for _, t := range cfg.Storage.Input.Tables { // for each input table...
		if err := o.runPhaseJob(ctx, writerPhase, WriterPayload(cfg, t)); err != nil {
			return err
		}
	}
	if err := o.processBlocks(ctx, cfg); err != nil {
		return err
	}
	for _, t := range cfg.Storage.Output.Tables { // for each expected output table...
		if err := o.runPhaseJob(ctx, extractorPhase, ExtractorPayload(cfg, t)); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) processBlocks(ctx context.Context, cfg *config.Config) error {
	s, err := o.OpenSession(ctx, o.Log, cfg.GetConnectionDetails())
	if err != nil {
		return err
	}
	defer s.Close()
	return transform.NewTransformation(o.Log, s, o.Stats).ProcessBlocks(ctx, cfg.Parameters.Blocks)
}

type phase struct {
	name        string // used in failure messages
	componentID string
	finishedFmt string
}

var (
	writerPhase    = phase{"Writer", constants.OracleWriterComponentID, `Finished writer job "%v"`}
	extractorPhase = phase{"Extractor", constants.OracleExtractorComponentID, `Finished extractor job "%v" succeeded`}
)

func (o *Orchestrator) runPhaseJob(ctx context.Context, p phase, data map[string]interface{}) error {
	start := time.Now()
	job, err := o.Runner.RunJob(ctx, p.componentID, data)
	if err != nil {
		var jobErr *jobrunner.JobError
		if errors.As(err, &jobErr) {
			o.Stats.AddJob(p.componentID, jobErr.Status, time.Since(start))
			if jobErr.IsStatusError() {
				return hperrors.WrapUserError(err, `%s job failed with following message: "%s"`, p.name, jobErr.Message)
			}
			return hperrors.WrapUserError(err, `%s job failed with status "%s" and message: "%s"`, p.name, jobErr.Status, jobErr.Message)
		}
		return errors.Wrapf(err, "error running %v job", p.componentID)
	}
	o.Stats.AddJob(p.componentID, job.Status, time.Since(start))
	o.Log.Info(fmt.Sprintf(p.finishedFmt, job.ID))
	return nil
}

// WriterPayload returns the configData that loads input table t into the database.
func WriterPayload(cfg *config.Config, t config.InputTable) map[string]interface{} {
	items := make([]interface{}, 0, len(t.ColumnTypes))
	for _, c := range t.ColumnTypes {
		items = append(items, map[string]interface{}{
			"name":     c.Source,
			"dbName":   c.Destination,
			"type":     c.Type,
			"nullable": c.ConvertEmptyValuesToNull,
			"size":     c.Length,
		})
	}
	table := t.Raw
	if table == nil {
		table = map[string]interface{}{"source": t.Source, "destination": t.Destination}
	}
	return map[string]interface{}{
		"parameters": map[string]interface{}{
			"db":      cfg.GetDbParameters(true),
			"export":  true,
			"tableId": t.Source,
			"dbName":  t.Destination,
			"items":   items,
		},
		"storage": map[string]interface{}{
			"input": map[string]interface{}{
				"tables": []interface{}{table},
			},
		},
	}
}

// ExtractorPayload returns the configData that unloads table t from the transformation schema.
func ExtractorPayload(cfg *config.Config, t config.OutputTable) map[string]interface{} {
	return map[string]interface{}{
		"parameters": map[string]interface{}{
			"db":   cfg.GetDbParameters(false),
			"id":   1,
			"name": t.Source,
			"table": map[string]interface{}{
				"schema":    cfg.Parameters.Db.Schema,
				"tableName": t.Source,
			},
			"outputTable": t.Destination,
		},
	}
}
