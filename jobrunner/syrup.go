package jobrunner

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/logger"
)

// SyrupJobRunner runs jobs using the synchronous syrup backend.
// A single request returns once the job has finished, so it is not subject to the client timeout.
type SyrupJobRunner struct {
	log      logger.Logger
	api      *apiClient
	services *ServiceRegistry
}

func NewSyrupJobRunner(log logger.Logger, services *ServiceRegistry, cfg Config) *SyrupJobRunner {
	return &SyrupJobRunner{log: log, api: newApiClient(withoutTimeout(cfg.HttpClient), cfg.Token, cfg.RunId), services: services}
}

func (r *SyrupJobRunner) Kind() RunnerKind {
	return KindSyrup
}

func (r *SyrupJobRunner) RunJob(ctx context.Context, componentID string, data map[string]interface{}) (*Job, error) {
	baseUrl, err := r.services.URL(ctx, constants.ServiceIdSyrup)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%v/%v/%v/run", baseUrl, constants.SyrupSuper, url.PathEscape(componentID))
	r.log.Debug("running syrup job for component ", componentID)
	job := &Job{}
	if err = r.api.doJSON(ctx, http.MethodPost, u, map[string]interface{}{"configData": data}, job); err != nil {
		return nil, err
	}
	r.log.Debug("syrup job ", job.ID, " finished with status ", job.Status)
	if err = checkJob(job); err != nil {
		return job, err
	}
	return job, nil
}
