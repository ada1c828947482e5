package pool_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/utkarsh5026/threadpool/pool"
)

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations int) func(task int) (int, error) {
	return func(task int) (int, error) {
		result := 0
		for i := 0; i < iterations; i++ {
			result += i * task
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) func(task int) (int, error) {
	return func(task int) (int, error) {
		time.Sleep(delay)
		return task * 2, nil
	}
}

func makeTasks(n int) []int {
	tasks := make([]int, n)
	for i := range tasks {
		tasks[i] = i
	}
	return tasks
}

func reportThroughput(b *testing.B, taskCount, workers int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	tasksPerSec := (float64(taskCount) / nsPerOp) * 1e9

	b.ReportMetric(tasksPerSec, "tasks/sec")
	if workers > 0 {
		b.ReportMetric(tasksPerSec/float64(workers), "tasks/sec/worker")
	}
}

func BenchmarkThroughput_WorkerScaling(b *testing.B) {
	const taskCount = 10000

	for _, workers := range []int{1, 2, 4, 8, 16, 32} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			p, err := pool.New(pool.WithWorkerCount(workers))
			if err != nil {
				b.Fatal(err)
			}
			defer p.Close()

			tasks := makeTasks(taskCount)
			processFunc := cpuBoundWork(100)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := pool.Map(p, tasks, processFunc); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			reportThroughput(b, taskCount, workers)
		})
	}
}

func BenchmarkThroughput_IOBound(b *testing.B) {
	const taskCount = 200

	for _, workers := range []int{4, 16, 64} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			p, err := pool.New(pool.WithWorkerCount(workers))
			if err != nil {
				b.Fatal(err)
			}
			defer p.Close()

			tasks := makeTasks(taskCount)
			processFunc := ioBoundWork(time.Millisecond)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := pool.Map(p, tasks, processFunc); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			reportThroughput(b, taskCount, workers)
		})
	}
}

func BenchmarkSubmitGet(b *testing.B) {
	p, err := pool.New(pool.WithWorkerCount(4))
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	task := pool.BindValue(computeSquare, 7)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := pool.Submit(p, task)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.Get(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSubmit_Parallel(b *testing.B) {
	p, err := pool.New(pool.WithWorkerCount(8))
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	task := pool.BindValue(computeSquare, 7)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			f, err := pool.Submit(p, task)
			if err != nil {
				b.Error(err)
				return
			}
			f.Wait()
		}
	})
}

func BenchmarkLifecycle(b *testing.B) {
	for _, workers := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("workers_%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p, err := pool.New(pool.WithWorkerCount(workers))
				if err != nil {
					b.Fatal(err)
				}
				_ = p.Close()
			}
		})
	}
}
