//go:generate mockgen -package mocks -destination mocks/interface.go -source=interface.go

package jobrunner

import (
	"context"
)

// JobRunner submits a job to a backend and waits for it to finish.
type JobRunner interface {
	// RunJob runs component componentID with data as its configData.
	// A job that does not finish with status success is returned as a *JobError.
	RunJob(ctx context.Context, componentID string, data map[string]interface{}) (*Job, error)
	Kind() RunnerKind
}

// StorageAPI is the subset of the Storage API needed to find and choose a job backend.
type StorageAPI interface {
	Services(ctx context.Context) ([]Service, error)
	VerifyToken(ctx context.Context) (*TokenInfo, error)
}
