package pool_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/utkarsh5026/threadpool/pool"
)

func TestRetryPolicy(t *testing.T) {
	t.Run("gives up after max attempts", func(t *testing.T) {
		p := newPool(t,
			pool.WithWorkerCount(1),
			pool.WithRetryPolicy(3, time.Millisecond),
		)

		permanent := errors.New("permanent")
		var attempts atomic.Int32
		f, _ := pool.Submit(p, func() (int, error) {
			attempts.Add(1)
			return 0, permanent
		})

		if _, err := f.Get(); !errors.Is(err, permanent) {
			t.Errorf("expected permanent error, got %v", err)
		}
		if got := attempts.Load(); got != 3 {
			t.Errorf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("no retries by default", func(t *testing.T) {
		p := newPool(t, pool.WithWorkerCount(1))

		var attempts atomic.Int32
		f, _ := pool.Submit(p, func() (int, error) {
			attempts.Add(1)
			return 0, errors.New("fail")
		})
		_, _ = f.Get()

		if got := attempts.Load(); got != 1 {
			t.Errorf("expected 1 attempt, got %d", got)
		}
	})

	t.Run("backoff curves", func(t *testing.T) {
		for _, bt := range []pool.BackoffType{pool.BackoffExponential, pool.BackoffJittered, pool.BackoffDecorrelated} {
			t.Run(bt.String(), func(t *testing.T) {
				p := newPool(t,
					pool.WithWorkerCount(1),
					pool.WithRetryPolicy(3, time.Millisecond),
					pool.WithBackoff(bt, time.Millisecond, 5*time.Millisecond),
					pool.WithJitterFactor(0.5),
				)

				var attempts atomic.Int32
				f, _ := pool.Submit(p, func() (int, error) {
					if attempts.Add(1) < 3 {
						return 0, errors.New("transient")
					}
					return 1, nil
				})
				if v, err := f.Get(); err != nil || v != 1 {
					t.Errorf("expected (1, nil), got (%v, %v)", v, err)
				}
			})
		}
	})
}

func TestRateLimit(t *testing.T) {
	// 20 starts per second with no burst beyond the first task.
	p := newPool(t,
		pool.WithWorkerCount(4),
		pool.WithRateLimit(20, 1),
	)

	start := time.Now()
	futures := make([]*pool.Future[struct{}], 5)
	for i := range futures {
		futures[i], _ = p.Go(func() error { return nil })
	}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			t.Fatal(err)
		}
	}

	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("5 tasks at 20/s finished in %v, rate limit not applied", elapsed)
	}
}

func TestLockOSThread(t *testing.T) {
	for name, opt := range map[string]pool.Option{
		"lock":     pool.WithLockOSThread(),
		"affinity": pool.WithCPUAffinity(),
	} {
		t.Run(name, func(t *testing.T) {
			p, err := pool.New(pool.WithWorkerCount(2), opt)
			if err != nil {
				t.Fatal(err)
			}

			results, err := pool.Map(p, []int{1, 2, 3, 4}, func(n int) (int, error) {
				return computeSquare(n), nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if results[3] != 16 {
				t.Errorf("expected 16, got %d", results[3])
			}

			if err := p.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestNilOptionIgnored(t *testing.T) {
	p := newPool(t, nil, pool.WithWorkerCount(1))
	if p.Workers() != 1 {
		t.Errorf("expected 1 worker, got %d", p.Workers())
	}
}
