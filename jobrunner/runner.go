package jobrunner

import (
	"context"
	"net/http"

	"github.com/relloyd/hptransform/constants"
	"github.com/relloyd/hptransform/helper"
	"github.com/relloyd/hptransform/hperrors"
	"github.com/relloyd/hptransform/logger"
	"github.com/relloyd/hptransform/stats"
)

// Config holds what the job runners need to authenticate and wait for jobs.
type Config struct {
	Token      string
	RunId      string
	PollPolicy PollPolicy
	HttpClient *http.Client
	Stats      *stats.PipelineStats
}

// SelectRunnerKind returns KindQueue if features contains the queue v2 feature, else KindSyrup.
func SelectRunnerKind(features []string) RunnerKind {
	if helper.StringSliceContains(features, constants.FeatureQueueV2) {
		return KindQueue
	}
	return KindSyrup
}

// NewJobRunner verifies the token once and returns the runner for the backend enabled for its owner.
func NewJobRunner(ctx context.Context, log logger.Logger, storage StorageAPI, cfg Config) (JobRunner, error) {
	info, err := storage.VerifyToken(ctx)
	if err != nil {
		return nil, hperrors.WrapApplicationError(err, "unable to verify the storage token: %v", err)
	}
	services := NewServiceRegistry(storage)
	kind := SelectRunnerKind(info.Owner.Features)
	log.Debug("using job runner ", kind)
	if kind == KindQueue {
		return NewQueueJobRunner(log, services, cfg), nil
	}
	return NewSyrupJobRunner(log, services, cfg), nil
}
