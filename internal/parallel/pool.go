// Package parallel runs fragment shading work across a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of independent jobs on a fixed set of
// goroutines. Each worker has its own queue and steals from the others
// when it runs dry, so uneven jobs (rows crossing a large triangle versus
// rows grazing its tip) still balance.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	queues []chan func()
	done   chan struct{}
	wg     sync.WaitGroup

	// submit is held for reading while ExecuteAll enqueues and for
	// writing while Close shuts the workers down.
	submit  sync.RWMutex
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// workers <= 0 means GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	depth := max(workers*4, 8)

	p := &WorkerPool{
		queues: make([]chan func(), workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), depth)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.loop(i)
	}
	return p
}

func (p *WorkerPool) loop(id int) {
	defer p.wg.Done()
	own := p.queues[id]
	for {
		select {
		case job := <-own:
			job()
			continue
		case <-p.done:
			p.drain(own)
			return
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case job := <-own:
			job()
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

func (p *WorkerPool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := 1; i < len(p.queues); i++ {
		select {
		case job := <-p.queues[(id+i)%len(p.queues)]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and returns once all of them have finished.
// Jobs are dealt round-robin. On a closed pool the jobs run on the
// calling goroutine so callers never lose work. A Close racing with
// ExecuteAll waits until the batch is queued.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 {
		return
	}

	p.submit.RLock()
	if !p.running.Load() {
		p.submit.RUnlock()
		for _, job := range jobs {
			job()
		}
		return
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%len(p.queues)] <- func() {
			defer pending.Done()
			job()
		}
	}
	p.submit.RUnlock()
	pending.Wait()
}

// Close stops the workers after the queued jobs have run. Close is
// idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.submit.Lock()
	close(p.done)
	p.submit.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return len(p.queues)
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
