package worker

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/mbrett/platen/pkg/progress"
)

// Job is one independent unit of work, typically a single page render.
type Job interface {
	Process(ctx context.Context) error
	ID() string
}

// Result is the outcome of one job.
type Result struct {
	JobID   string
	Error   error
	Elapsed time.Duration
}

// Pool runs jobs across a fixed set of worker goroutines.
type Pool struct {
	workerCount int
	jobs        chan Job
	results     chan Result
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	progress    *progress.Tracker
}

// NewPool creates a pool. A non-positive workerCount uses one worker per CPU.
func NewPool(workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workerCount: workerCount,
		jobs:        make(chan Job, workerCount*2),
		results:     make(chan Result, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// NewPoolWithProgress creates a pool that redraws a per-worker progress
// display as jobs start and finish.
func NewPoolWithProgress(workerCount, totalJobs int) *Pool {
	p := NewPool(workerCount)
	p.progress = progress.NewTracker(p.workerCount, totalJobs)
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop closes the queue, waits for in-flight jobs, and closes Results.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
	p.cancel()

	if p.progress != nil {
		p.progress.Finish()
	}
}

// Submit queues a job. If the pool is already shutting down the job is not
// run and a failed Result is recorded instead.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
		p.results <- Result{JobID: job.ID(), Error: p.ctx.Err()}
	}
}

// Results returns the channel of job outcomes. It is closed by Stop once
// every submitted job has finished.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// WorkerCount returns the number of workers in the pool.
func (p *Pool) WorkerCount() int {
	return p.workerCount
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			if p.progress != nil {
				p.progress.UpdateWorker(id, job.ID(), false)
			}

			start := time.Now()
			err := job.Process(p.ctx)

			if p.progress != nil {
				p.progress.UpdateWorker(id, job.ID(), true)
			}

			p.results <- Result{JobID: job.ID(), Error: err, Elapsed: time.Since(start)}

		case <-p.ctx.Done():
			return
		}
	}
}
