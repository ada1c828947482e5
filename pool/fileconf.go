package pool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/utkarsh5026/threadpool/internal/algorithms"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML form of the pool options.
//
//	workers: 4
//	lock_os_thread: true
//	rate_limit:
//	  tasks_per_second: 20
//	  burst: 5
//	retry:
//	  max_attempts: 3
//	  initial_delay: 100ms
//	  max_delay: 2s
//	  backoff: jittered
//	  jitter_factor: 0.2
//
// Omitted fields keep the defaults of New.
type FileConfig struct {
	Workers      int              `yaml:"workers"`
	LockOSThread bool             `yaml:"lock_os_thread"`
	CPUAffinity  bool             `yaml:"cpu_affinity"`
	RateLimit    *RateLimitConfig `yaml:"rate_limit"`
	Retry        *RetryConfig     `yaml:"retry"`
}

// RateLimitConfig configures WithRateLimit.
type RateLimitConfig struct {
	TasksPerSecond float64 `yaml:"tasks_per_second"`
	Burst          int     `yaml:"burst"`
}

// RetryConfig configures WithRetryPolicy, WithBackoff and WithJitterFactor.
// Delays are Go duration strings such as "250ms".
type RetryConfig struct {
	MaxAttempts  int     `yaml:"max_attempts"`
	InitialDelay string  `yaml:"initial_delay"`
	MaxDelay     string  `yaml:"max_delay"`
	Backoff      string  `yaml:"backoff"`
	JitterFactor float64 `yaml:"jitter_factor"`
}

// LoadConfig reads a YAML pool configuration from path.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML pool configuration. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func ParseConfig(data []byte) (*FileConfig, error) {
	var cfg FileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges without building options.
func (c *FileConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers: %w", ErrInvalidWorkerCount)
	}

	if rl := c.RateLimit; rl != nil {
		if rl.TasksPerSecond <= 0 {
			return errors.New("rate_limit.tasks_per_second must be positive")
		}
		if rl.Burst <= 0 {
			return errors.New("rate_limit.burst must be positive")
		}
	}

	if r := c.Retry; r != nil {
		if r.MaxAttempts < 1 {
			return errors.New("retry.max_attempts must be at least 1")
		}
		if r.JitterFactor < 0 || r.JitterFactor > 1 {
			return errors.New("retry.jitter_factor must be between 0 and 1")
		}
	}

	return nil
}

// Options converts the file configuration into pool options.
func (c *FileConfig) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var opts []Option

	if c.Workers > 0 {
		opts = append(opts, WithWorkerCount(c.Workers))
	}
	if c.CPUAffinity {
		opts = append(opts, WithCPUAffinity())
	} else if c.LockOSThread {
		opts = append(opts, WithLockOSThread())
	}

	if rl := c.RateLimit; rl != nil {
		opts = append(opts, WithRateLimit(rl.TasksPerSecond, rl.Burst))
	}

	if r := c.Retry; r != nil {
		initialDelay, err := parseDuration("retry.initial_delay", r.InitialDelay)
		if err != nil {
			return nil, err
		}
		maxDelay, err := parseDuration("retry.max_delay", r.MaxDelay)
		if err != nil {
			return nil, err
		}
		backoffType, err := algorithms.ParseBackoffType(r.Backoff)
		if err != nil {
			return nil, fmt.Errorf("retry.backoff: %w", err)
		}

		opts = append(opts,
			WithRetryPolicy(r.MaxAttempts, initialDelay),
			WithBackoff(backoffType, initialDelay, maxDelay),
		)
		if r.JitterFactor > 0 {
			opts = append(opts, WithJitterFactor(r.JitterFactor))
		}
	}

	return opts, nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", field)
	}
	return d, nil
}
