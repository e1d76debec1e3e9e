package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolCreate(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

func TestWorkerPoolExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 200)
	for i := range jobs {
		jobs[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(jobs)

	if counter.Load() != 200 {
		t.Errorf("counter = %d, want 200", counter.Load())
	}
}

func TestWorkerPoolUnevenJobs(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var counter atomic.Int64
	jobs := make([]func(), 8)
	for i := range jobs {
		jobs[i] = func() {
			if i == 0 {
				time.Sleep(20 * time.Millisecond)
			}
			counter.Add(1)
		}
	}
	pool.ExecuteAll(jobs)
	if counter.Load() != 8 {
		t.Errorf("counter = %d, want 8", counter.Load())
	}
}

func TestWorkerPoolClosedRunsInline(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close() // idempotent

	if pool.IsRunning() {
		t.Error("closed pool reports running")
	}
	ran := 0
	pool.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("closed pool ran %d jobs, want 2", ran)
	}
}

func TestWorkerPoolCloseDuringExecuteAll(t *testing.T) {
	for run := range 200 {
		pool := NewWorkerPool(2)
		var counter atomic.Int32
		jobs := make([]func(), 64)
		for i := range jobs {
			jobs[i] = func() {
				time.Sleep(time.Microsecond)
				counter.Add(1)
			}
		}

		finished := make(chan struct{})
		go func() {
			pool.ExecuteAll(jobs)
			close(finished)
		}()
		time.Sleep(50 * time.Microsecond)
		pool.Close()

		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatalf("run %d: ExecuteAll did not return after Close", run)
		}
		if got := counter.Load(); got != 64 {
			t.Fatalf("run %d: %d of 64 jobs ran", run, got)
		}
	}
}

func TestWorkerPoolEmpty(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()
	pool.ExecuteAll(nil)
}

func BenchmarkWorkerPoolExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()
	jobs := make([]func(), 64)
	for i := range jobs {
		jobs[i] = func() {}
	}
	b.ReportAllocs()
	for b.Loop() {
		pool.ExecuteAll(jobs)
	}
}
