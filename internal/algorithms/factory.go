package algorithms

import (
	"fmt"
	"strings"
	"time"
)

// BackoffType defines the retry backoff algorithm to use.
type BackoffType int

const (
	// BackoffExponential uses simple exponential backoff (default).
	BackoffExponential BackoffType = iota
	// BackoffJittered adds random jitter to prevent thundering herd.
	BackoffJittered
	// BackoffDecorrelated uses AWS-style decorrelated jitter.
	BackoffDecorrelated
)

func (b BackoffType) String() string {
	switch b {
	case BackoffExponential:
		return "exponential"
	case BackoffJittered:
		return "jittered"
	case BackoffDecorrelated:
		return "decorrelated"
	default:
		return fmt.Sprintf("BackoffType(%d)", int(b))
	}
}

// ParseBackoffType maps a config name to a BackoffType. The empty string
// selects the default exponential backoff.
func ParseBackoffType(name string) (BackoffType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exponential":
		return BackoffExponential, nil
	case "jittered", "jitter":
		return BackoffJittered, nil
	case "decorrelated":
		return BackoffDecorrelated, nil
	default:
		return 0, fmt.Errorf("unknown backoff type %q", name)
	}
}

// NewBackoffStrategy creates a backoff strategy based on the configuration.
// A strategy instance belongs to one task's retry sequence; build a new one
// per task rather than sharing it between workers.
func NewBackoffStrategy(
	backoffType BackoffType,
	initialDelay, maxDelay time.Duration,
	jitterFactor float64,
) BackoffStrategy {
	if maxDelay < initialDelay {
		maxDelay = initialDelay
	}

	switch backoffType {
	case BackoffJittered:
		return newJitteredBackoff(initialDelay, maxDelay, jitterFactor)

	case BackoffDecorrelated:
		return newDecorrelatedJitterBackoff(initialDelay, maxDelay)

	default:
		return newExponentialBackoff(initialDelay, maxDelay)
	}
}
