package algorithms

import (
	"math/rand"
	"time"
)

// Prevent overflow in the shift used by calcExponentialDelay.
const maxShift = 62

// BackoffStrategy computes the pause between two attempts of the same task.
type BackoffStrategy interface {
	// NextDelay returns the delay before the next attempt. attemptNumber is
	// 0-indexed (0 = first retry after the initial failure).
	NextDelay(attemptNumber int, lastError error) time.Duration
}

// exponentialBackoff doubles the delay on every attempt:
// initialDelay, 2x, 4x, 8x ... until maxDelay is reached.
type exponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
}

func newExponentialBackoff(initialDelay, maxDelay time.Duration) *exponentialBackoff {
	return &exponentialBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}
}

func (eb *exponentialBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	return calcExponentialDelay(attemptNumber, eb.initialDelay, eb.maxDelay)
}

// jitteredBackoff scales the exponential delay by a random factor in
// [1-jitterFactor, 1+jitterFactor] so that tasks failing together do not all
// retry together.
type jitteredBackoff struct {
	initialDelay, maxDelay time.Duration
	jitterFactor           float64
	rng                    *rand.Rand
}

func newJitteredBackoff(initialDelay, maxDelay time.Duration, jitterFactor float64) *jitteredBackoff {
	return &jitteredBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (jb *jitteredBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	base := calcExponentialDelay(attemptNumber, jb.initialDelay, jb.maxDelay)
	multiplier := 1.0 + (jb.rng.Float64()*2-1)*jb.jitterFactor
	return clamp(time.Duration(float64(base)*multiplier), 0, jb.maxDelay)
}

// decorrelatedJitterBackoff implements AWS-style decorrelated jitter:
// sleep = min(maxDelay, random(initialDelay, prevSleep*3)).
// Each delay depends on the previous one rather than on the attempt number.
type decorrelatedJitterBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	prevDelay    time.Duration
	rng          *rand.Rand
}

func newDecorrelatedJitterBackoff(initialDelay, maxDelay time.Duration) *decorrelatedJitterBackoff {
	return &decorrelatedJitterBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		prevDelay:    initialDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (djb *decorrelatedJitterBackoff) NextDelay(attemptNumber int, _ error) time.Duration {
	if attemptNumber <= 0 {
		djb.prevDelay = djb.initialDelay
		return djb.initialDelay
	}

	upperBound := min(time.Duration(float64(djb.prevDelay)*3), djb.maxDelay)
	spread := upperBound - djb.initialDelay
	if spread <= 0 {
		djb.prevDelay = djb.initialDelay
		return djb.initialDelay
	}

	delay := djb.initialDelay + time.Duration(djb.rng.Int63n(int64(spread)))
	djb.prevDelay = delay
	return delay
}

func calcExponentialDelay(attemptNumber int, initialDelay, maxDelay time.Duration) time.Duration {
	if attemptNumber < 0 {
		return 0
	}

	if attemptNumber >= maxShift {
		return maxDelay
	}

	if initialDelay > maxDelay>>uint(attemptNumber) {
		return maxDelay
	}

	return initialDelay << uint(attemptNumber)
}

func clamp[T ~int64 | ~float64](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
