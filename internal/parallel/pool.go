package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Job is a unit of work. It should return early once ctx is done.
type Job func(ctx context.Context)

// WorkerPool is a pool of goroutines executing render jobs.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan Job

	// ctx is cancelled by Close, jobs observe it through their own context.
	ctx    context.Context
	cancel context.CancelFunc

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan Job, workers),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan Job, queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			p.run(job)
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			p.run(job)
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			p.run(job)
		}
	}
}

func (p *WorkerPool) run(job Job) {
	if job != nil {
		job(p.ctx)
	}
}

// drain runs what is left in a queue. Jobs see a cancelled context.
func (p *WorkerPool) drain(queue chan Job) {
	for {
		select {
		case job := <-queue:
			p.run(job)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(self int) Job {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Submit schedules a job on the worker with the shortest queue and returns
// immediately. It reports false if the pool is closed.
func (p *WorkerPool) Submit(job Job) bool {
	if job == nil || !p.running.Load() {
		return false
	}

	shortest := 0
	for i := 1; i < p.workers; i++ {
		if len(p.queues[i]) < len(p.queues[shortest]) {
			shortest = i
		}
	}

	select {
	case p.queues[shortest] <- job:
	case <-p.done:
		return false
	default:
		// every queue is full, Submit must not block the caller
		go job(p.ctx)
	}
	return true
}

// Close stops accepting jobs, cancels the pool context and waits for queued
// jobs to return. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.cancel()
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
