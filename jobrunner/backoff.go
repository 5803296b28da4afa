package jobrunner

import (
	"fmt"
	"math"
	"time"

	"github.com/relloyd/hptransform/constants"
)

// PollPolicy decides how long to wait before the next job status request.
type PollPolicy interface {
	// Delay returns the wait after the given attempt, where the first attempt is 1.
	Delay(attempt int) time.Duration
}

// FlatPolicy waits the same interval between every poll.
type FlatPolicy struct {
	Interval time.Duration
}

func (p FlatPolicy) Delay(attempt int) time.Duration {
	return p.Interval
}

// ExponentialPolicy doubles the wait after every poll, starting from Initial, up to Max.
type ExponentialPolicy struct {
	Initial time.Duration
	Max     time.Duration
}

func (p ExponentialPolicy) Delay(attempt int) time.Duration {
	initial := p.Initial
	if initial <= 0 {
		initial = 2 * time.Second
	}
	maxDelay := p.Max
	if maxDelay <= 0 {
		maxDelay = constants.PollIntervalMaxDefault
	}
	if attempt < 1 {
		return initial
	}
	d := float64(initial) * math.Pow(2.0, float64(attempt-1))
	if d > float64(maxDelay) {
		d = float64(maxDelay)
	}
	return time.Duration(d)
}

// NewPollPolicy returns the policy called name.
// The flat policy waits interval between polls; the exponential policy starts at 2s and is capped at interval.
func NewPollPolicy(name string, interval time.Duration) (PollPolicy, error) {
	if interval <= 0 {
		interval = constants.PollIntervalDefault
	}
	switch name {
	case "", constants.PollPolicyFlat:
		return FlatPolicy{Interval: interval}, nil
	case constants.PollPolicyExponential:
		return ExponentialPolicy{Max: interval}, nil
	default:
		return nil, fmt.Errorf("unsupported poll policy %q, expected %q or %q", name, constants.PollPolicyFlat, constants.PollPolicyExponential)
	}
}
