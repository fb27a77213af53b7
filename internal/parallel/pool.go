// Package parallel runs label batch builders on a fixed set of workers.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned for jobs handed to a closed pool.
var ErrClosed = errors.New("parallel: pool closed")

// Job builds something that may fail, typically one source's label batch.
type Job func() error

// Pool distributes jobs across workers, each with its own queue. An idle
// worker steals from the other queues before blocking on its own, so one
// slow source does not hold back the others.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// mu orders queue sends before Close: Run holds it shared while
	// queueing, Close takes it exclusively to stop the workers.
	mu      sync.RWMutex
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes every job and waits for all of them. The returned error
// joins the job errors in job order. A Run that starts after Close reports
// ErrClosed for every job; one that started before Close runs to the end.
func (p *Pool) Run(jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	errs := make([]error, len(jobs))

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for i := range errs {
			errs[i] = ErrClosed
		}
		return errors.Join(errs...)
	}
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			errs[i] = job()
		}
	}
	p.mu.RUnlock()

	wg.Wait()
	return errors.Join(errs...)
}

// Close stops the pool after the queued jobs have run. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }
