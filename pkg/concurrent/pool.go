package concurrent

import (
	"errors"
	"time"
)

// ErrScheduleTimeout is returned by Pool when no worker picked up the task
// within the given deadline.
var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool is a bounded goroutine pool for connection handling. goroutines are
// spawned lazily up to the configured size; Schedule blocks until a worker is
// free, ScheduleTimeout gives up after the timeout.
type Pool struct {
	sem  chan struct{}
	work chan func()
}

func NewPool(size, queue, spawn int) *Pool {
	if spawn <= 0 && queue > 0 {
		panic("dead queue configuration detected")
	}
	if spawn > size {
		spawn = size
	}
	p := &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
	for i := 0; i < spawn; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}

	return p
}

func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for task := range p.work {
		task()
	}
}
