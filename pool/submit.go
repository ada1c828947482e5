package pool

import "fmt"

// Submit queues fn for execution and returns a Future for its outcome.
//
// Submit never blocks: if every worker is busy the task waits in the queue.
// It fails only with ErrNilTask, or with ErrPoolClosed once Close or Shutdown
// has started. Whatever fn returns, including a non-nil error, is delivered
// through the Future; a panic in fn is delivered as an error wrapping
// ErrTaskPanicked.
//
// Example:
//
//	f, err := pool.Submit(p, func() (int, error) {
//	    return computeSquare(7), nil
//	})
//	if err != nil {
//	    return err
//	}
//	v, err := f.Get() // 49, nil
func Submit[R any](p *ThreadPool, fn func() (R, error)) (*Future[R], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return enqueue(p, fn)
}

// Go queues a function that only reports an error.
func (p *ThreadPool) Go(fn func() error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	return enqueue(p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// Map submits fn once per item and waits for all of them. Results are returned
// in input order. If any task fails, Map still waits for every task and
// returns the error of the first failing item, wrapped with its index.
//
// If the pool is closed part way through, the tasks already submitted are
// waited for and ErrPoolClosed is returned.
func Map[T, R any](p *ThreadPool, items []T, fn func(T) (R, error)) ([]R, error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	futures := make([]*Future[R], 0, len(items))
	for _, item := range items {
		f, err := Submit(p, Bind(fn, item))
		if err != nil {
			for _, prev := range futures {
				prev.Wait()
			}
			return nil, err
		}
		futures = append(futures, f)
	}

	results := make([]R, len(items))
	var firstErr error
	for i, f := range futures {
		v, err := f.Get()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("item %d: %w", i, err)
			}
			continue
		}
		results[i] = v
	}

	return results, firstErr
}

// Bind captures fn and its argument into a no-argument task for Submit.
// The argument is evaluated when Bind is called, not when the task runs.
// Bind returns nil for a nil fn so that Submit reports ErrNilTask.
func Bind[A, R any](fn func(A) (R, error), a A) func() (R, error) {
	if fn == nil {
		return nil
	}
	return func() (R, error) {
		return fn(a)
	}
}

// Bind2 is Bind for two-argument functions.
func Bind2[A, B, R any](fn func(A, B) (R, error), a A, b B) func() (R, error) {
	if fn == nil {
		return nil
	}
	return func() (R, error) {
		return fn(a, b)
	}
}

// Bind3 is Bind for three-argument functions.
func Bind3[A, B, C, R any](fn func(A, B, C) (R, error), a A, b B, c C) func() (R, error) {
	if fn == nil {
		return nil
	}
	return func() (R, error) {
		return fn(a, b, c)
	}
}

// BindValue binds a function that cannot fail.
//
//	f, _ := pool.Submit(p, pool.BindValue(computeSquare, 7))
func BindValue[A, R any](fn func(A) R, a A) func() (R, error) {
	if fn == nil {
		return nil
	}
	return func() (R, error) {
		return fn(a), nil
	}
}
