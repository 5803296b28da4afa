package jobrunner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/stats"
)

// QueueJobRunner runs jobs using the queue v2 backend.
// Jobs are created and then polled until they finish. There is no limit on the number of polls;
// cancel ctx to give up.
type QueueJobRunner struct {
	log      logger.Logger
	api      *apiClient
	services *ServiceRegistry
	policy   PollPolicy
	stats    *stats.PipelineStats
}

func NewQueueJobRunner(log logger.Logger, services *ServiceRegistry, cfg Config) *QueueJobRunner {
	policy := cfg.PollPolicy
	if policy == nil {
		policy = FlatPolicy{Interval: constants.PollIntervalDefault}
	}
	return &QueueJobRunner{
		log:      log,
		api:      newApiClient(cfg.HttpClient, cfg.Token, cfg.RunId),
		services: services,
		policy:   policy,
		stats:    cfg.Stats,
	}
}

func (r *QueueJobRunner) Kind() RunnerKind {
	return KindQueue
}

func (r *QueueJobRunner) RunJob(ctx context.Context, componentID string, data map[string]interface{}) (*Job, error) {
	baseUrl, err := r.services.URL(ctx, constants.ServiceIdQueue)
	if err != nil {
		return nil, err
	}
	created := &Job{}
	req := map[string]interface{}{
		"component":  componentID,
		"mode":       constants.JobModeRun,
		"configData": data,
	}
	if err = r.api.doJSON(ctx, http.MethodPost, baseUrl+"/jobs", req, created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, hperrors.NewApplicationError("queue job for component %q was created without an id", componentID)
	}
	r.log.Debug("created queue job ", created.ID, " for component ", componentID)
	u := fmt.Sprintf("%v/jobs/%v", baseUrl, url.PathEscape(string(created.ID)))
	for attempt := 1; ; attempt++ {
		job := &Job{}
		r.stats.AddPollAttempt()
		if err = r.api.doJSON(ctx, http.MethodGet, u, nil, job); err != nil {
			return nil, err
		}
		if job.IsFinished {
			r.log.Debug("queue job ", job.ID, " finished with status ", job.Status)
			if err = checkJob(job); err != nil {
				return job, err
			}
			return job, nil
		}
		d := r.policy.Delay(attempt)
		r.log.Debug("queue job ", created.ID, " has status ", job.Status, ", waiting ", d)
		if err = sleep(ctx, d); err != nil {
			return nil, err
		}
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
