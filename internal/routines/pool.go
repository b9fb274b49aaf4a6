// Package routines provides a goroutine pool.
package routines

import (
	"sync"
)

// Pool is a FIFO go-routine pool.
type Pool struct {
	wq        []WorkFn
	terminate bool
	wqMutex   sync.Mutex // protects wq and terminate

	workChan chan WorkFn

	schedulerNotifyChan chan struct{}

	terminateWg sync.WaitGroup
}

// WorkFn is a function that is executed by the pool workers.
type WorkFn func()

// NewPool creates and start a new go-routine pool.
// The pool starts <routines> number of workers.
func NewPool(routines uint) *Pool {
	p := Pool{
		workChan:            make(chan WorkFn),
		schedulerNotifyChan: make(chan struct{}, 1),
	}

	p.terminateWg.Add(1)
	go p.scheduler()

	for i := uint(0); i < routines; i++ {
		p.terminateWg.Add(1)
		go p.worker()
	}

	return &p
}

func (p *Pool) scheduler() {
	defer p.terminateWg.Done()

	for {
		<-p.schedulerNotifyChan

		for {
			work := p.popWork()
			if work == nil {
				break
			}

			p.workChan <- work
		}

		p.wqMutex.Lock()
		terminate := p.terminate && len(p.wq) == 0
		p.wqMutex.Unlock()

		if terminate {
			close(p.workChan)
			return
		}
	}
}

func (p *Pool) popWork() WorkFn {
	p.wqMutex.Lock()
	defer p.wqMutex.Unlock()

	if len(p.wq) == 0 {
		return nil
	}

	w := p.wq[0]
	p.wq[0] = nil
	p.wq = p.wq[1:]

	return w
}

func (p *Pool) worker() {
	defer p.terminateWg.Done()

	for workFn := range p.workChan {
		workFn()
	}
}

func (p *Pool) notifyScheduler() {
	select {
	case p.schedulerNotifyChan <- struct{}{}:
	default:
	}
}

// Queue queues new work for the pool.
// If Queue() is called after Wait(), the method panics.
// The method never blocks.
func (p *Pool) Queue(workFn WorkFn) {
	p.wqMutex.Lock()
	defer p.wqMutex.Unlock()

	if p.terminate {
		panic("work was queued on a closed pool")
	}

	p.wq = append(p.wq, workFn)
	p.notifyScheduler()
}

// Wait waits until the workqueue is empty and all queued work finished, then
// it terminates the worker goroutines.
// After Wait() was called, no further work must be queued.
func (p *Pool) Wait() {
	p.wqMutex.Lock()
	p.terminate = true
	p.wqMutex.Unlock()

	p.notifyScheduler()

	p.terminateWg.Wait()
}
