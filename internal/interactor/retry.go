package interactor

import (
	"math"
	"time"
)

// RetryPolicy computes exponential backoff with a ceiling for the photo
// upload queue.
type RetryPolicy struct {
	RetryTimes   int
	InitialDelay time.Duration
	Factor       float64
	MaxDelay     time.Duration
}

// Delay returns the wait before retry number attempt (zero-based):
// min(maxDelay, initialDelay * factor^attempt).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(p.InitialDelay) * math.Pow(p.Factor, float64(attempt))
	if d > float64(p.MaxDelay) || math.IsInf(d, 1) {
		return p.MaxDelay
	}
	return time.Duration(d)
}
