package jobrunner

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/relloyd/hptransform/constants"
)

// RunnerKind names the job backend a JobRunner talks to.
type RunnerKind string

const (
	KindSyrup RunnerKind = "syrup"
	KindQueue RunnerKind = "queue"
)

// JobID holds job ids that the backends send as either JSON numbers or strings.
type JobID string

func (id *JobID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = JobID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("job id must be a string or number: %w", err)
	}
	*id = JobID(n.String())
	return nil
}

// Job is the document describing a job as returned by either backend.
type Job struct {
	ID         JobID     `json:"id"`
	Status     string    `json:"status"`
	IsFinished bool      `json:"isFinished"`
	Result     JobResult `json:"result"`
}

// JobResult carries the message of a finished job, when there is one.
type JobResult struct {
	Message *string `json:"message"`
}

// UnmarshalJSON accepts an empty JSON array for an empty result.
func (r *JobResult) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		*r = JobResult{}
		return nil
	}
	type plain JobResult
	return json.Unmarshal(b, (*plain)(r))
}

// GetMessage returns the result message or the fallback text when there is none.
func (j *Job) GetMessage() string {
	if j.Result.Message == nil {
		return constants.JobNoMessage
	}
	return *j.Result.Message
}

// JobError is returned for jobs that finished with any status other than success.
type JobError struct {
	JobID   JobID
	Status  string
	Message string
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %q finished with status %q and message: %q", e.JobID, e.Status, e.Message)
}

// IsStatusError returns true if the backend reported the job as failed, as opposed to any other
// unsuccessful status like cancelled or terminated.
func (e *JobError) IsStatusError() bool {
	return e.Status == constants.JobStatusError
}

// checkJob turns an unsuccessful job into a *JobError.
func checkJob(j *Job) error {
	if j.Status == constants.JobStatusSuccess {
		return nil
	}
	return &JobError{JobID: j.ID, Status: j.Status, Message: j.GetMessage()}
}

// Service is an entry in the Storage API service index.
type Service struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// TokenInfo is the part of the token verification response we use.
type TokenInfo struct {
	Owner struct {
		Features []string `json:"features"`
	} `json:"owner"`
}
