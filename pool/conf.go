package pool

import (
	"time"

	"github.com/utkarsh5026/threadpool/internal/algorithms"
	"github.com/utkarsh5026/threadpool/internal/cpu"
	"github.com/utkarsh5026/threadpool/internal/scheduler"
	"golang.org/x/time/rate"
)

// DefaultWorkerCount is used when no worker count is given and the number of
// CPUs cannot be determined.
const DefaultWorkerCount = 4

// BackoffType selects the delay curve used between retry attempts.
type BackoffType = algorithms.BackoffType

const (
	// BackoffExponential doubles the delay on every retry (default).
	BackoffExponential = algorithms.BackoffExponential
	// BackoffJittered randomizes the exponential delay by the jitter factor.
	BackoffJittered = algorithms.BackoffJittered
	// BackoffDecorrelated uses AWS-style decorrelated jitter.
	BackoffDecorrelated = algorithms.BackoffDecorrelated
)

// Option is a functional option for configuring a ThreadPool.
type Option func(*poolConfig)

type poolConfig struct {
	workerCount    int
	workerCountSet bool

	maxAttempts    int
	initialDelay   time.Duration
	retryPolicySet bool

	backoffType         BackoffType
	backoffInitialDelay time.Duration
	backoffMaxDelay     time.Duration
	backoffJitterFactor float64

	rateLimiter *rate.Limiter

	beforeTaskStart func(taskID int64)
	onTaskEnd       func(taskID int64, err error)
	onRetry         func(taskID int64, attempt int, err error)

	lockOSThread bool
	pinCPU       bool
}

// WithWorkerCount sets the number of workers. Unlike the other options an
// invalid value is not ignored: New fails with ErrInvalidWorkerCount when
// count is below 1.
//
// If not specified, the pool uses one worker per logical CPU.
func WithWorkerCount(count int) Option {
	return func(cfg *poolConfig) {
		cfg.workerCount = count
		cfg.workerCountSet = true
	}
}

// WithRetryPolicy retries a failing task up to maxAttempts times in total.
// initialDelay is the pause before the first retry; later retries follow the
// configured backoff (exponential by default).
// Without this option every task is attempted exactly once.
func WithRetryPolicy(maxAttempts int, initialDelay time.Duration) Option {
	return func(cfg *poolConfig) {
		if maxAttempts > 0 {
			cfg.maxAttempts = maxAttempts
			cfg.retryPolicySet = true
		}

		if initialDelay > 0 {
			cfg.initialDelay = initialDelay
		}
	}
}

// WithBackoff selects the backoff curve and its bounds for retries.
// It only has an effect together with WithRetryPolicy.
func WithBackoff(backoffType BackoffType, initialDelay, maxDelay time.Duration) Option {
	return func(cfg *poolConfig) {
		cfg.backoffType = backoffType
		if initialDelay > 0 {
			cfg.backoffInitialDelay = initialDelay
		}
		if maxDelay > 0 {
			cfg.backoffMaxDelay = maxDelay
		}
	}
}

// WithJitterFactor sets the relative jitter (0.0 to 1.0) used by BackoffJittered.
func WithJitterFactor(factor float64) Option {
	return func(cfg *poolConfig) {
		if factor >= 0 && factor <= 1 {
			cfg.backoffJitterFactor = factor
		}
	}
}

// WithRateLimit caps how many tasks may start per second across all workers.
// burst is the number of tasks allowed to start back to back.
// Submission itself is never throttled; only the start of execution is.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *poolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithBeforeTaskStart registers a hook run on the worker right before a task body.
// If the hook panics the body is skipped and the task fails with ErrTaskPanicked.
func WithBeforeTaskStart(fn func(taskID int64)) Option {
	return func(cfg *poolConfig) {
		cfg.beforeTaskStart = fn
	}
}

// WithOnTaskEnd registers a hook run on the worker after a task body returned
// or panicked, before the task's Future is resolved. A panic in the hook fails
// an otherwise successful task with ErrTaskPanicked.
func WithOnTaskEnd(fn func(taskID int64, err error)) Option {
	return func(cfg *poolConfig) {
		cfg.onTaskEnd = fn
	}
}

// WithOnRetry registers a hook run after each failed attempt that is going to
// be retried. attempt is 1 for the first failure.
func WithOnRetry(fn func(taskID int64, attempt int, err error)) Option {
	return func(cfg *poolConfig) {
		cfg.onRetry = fn
	}
}

// WithLockOSThread wires every worker to its own OS thread for the lifetime of
// the pool, so the pool occupies exactly N threads while it is open.
func WithLockOSThread() Option {
	return func(cfg *poolConfig) {
		cfg.lockOSThread = true
	}
}

// WithCPUAffinity locks every worker to an OS thread and pins worker i to
// CPU i mod NumCPU where the platform allows it (Linux and Windows).
func WithCPUAffinity() Option {
	return func(cfg *poolConfig) {
		cfg.lockOSThread = true
		cfg.pinCPU = true
	}
}

// defaultWorkerCount returns the hardware parallelism, or DefaultWorkerCount
// if it is not available.
func defaultWorkerCount() int {
	if n := cpu.NumCPU(); n > 0 {
		return n
	}
	return DefaultWorkerCount
}

func createConfig(opts ...Option) (*scheduler.Config, error) {
	cfg := &poolConfig{
		workerCount:         defaultWorkerCount(),
		maxAttempts:         1,
		backoffType:         BackoffExponential,
		backoffInitialDelay: 100 * time.Millisecond,
		backoffMaxDelay:     5 * time.Second,
		backoffJitterFactor: 0.1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.workerCountSet && cfg.workerCount < 1 {
		return nil, ErrInvalidWorkerCount
	}

	if cfg.retryPolicySet && cfg.initialDelay > 0 {
		cfg.backoffInitialDelay = cfg.initialDelay
	}

	conf := &scheduler.Config{
		WorkerCount:     cfg.workerCount,
		MaxAttempts:     cfg.maxAttempts,
		RateLimiter:     cfg.rateLimiter,
		BeforeTaskStart: cfg.beforeTaskStart,
		OnTaskEnd:       cfg.onTaskEnd,
		OnRetry:         cfg.onRetry,
		LockOSThread:    cfg.lockOSThread,
		PinCPU:          cfg.pinCPU,
	}

	if cfg.maxAttempts > 1 {
		backoffType := cfg.backoffType
		initialDelay, maxDelay := cfg.backoffInitialDelay, cfg.backoffMaxDelay
		jitter := cfg.backoffJitterFactor
		conf.NewBackoff = func() algorithms.BackoffStrategy {
			return algorithms.NewBackoffStrategy(backoffType, initialDelay, maxDelay, jitter)
		}
	}

	return conf, nil
}
