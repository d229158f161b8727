// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatesim

import (
	"context"
	"sync"
)

// A Command is a unit of work executed against a Sim by a Queue.
//
type Command func(s *Sim) error

type request struct {
	fn  Command
	res chan error
}

// Queue confines all access to a Sim to a single worker goroutine. Commands
// are executed one at a time in submission order.
//
// Callers must make sure to call Dispose() once the queue is no longer needed
// in order to stop the worker goroutine.
//
type Queue struct {
	s    *Sim
	reqs chan request
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewQueue starts a worker goroutine executing commands against s. backlog
// is the number of commands that can be waiting for execution before Do
// blocks.
//
func NewQueue(s *Sim, backlog int) *Queue {
	if backlog < 0 {
		backlog = 0
	}
	q := &Queue{
		s:    s,
		reqs: make(chan request, backlog),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.worker()
	return q
}

func (q *Queue) worker() {
	defer close(q.done)
	for {
		select {
		case r := <-q.reqs:
			r.res <- r.fn(q.s)
		case <-q.quit:
			return
		}
	}
}

// Do submits fn for execution and waits for its result.
//
// If ctx is canceled before fn could be queued, Do returns ctx.Err(). Once
// queued, fn runs to completion even if ctx is canceled in the meantime; Do
// then returns ctx.Err() without waiting.
//
func (q *Queue) Do(ctx context.Context, fn Command) error {
	r := request{fn, make(chan error, 1)}
	select {
	case q.reqs <- r:
	case <-ctx.Done():
		return ctx.Err()
	case <-q.quit:
		return ErrQueueClosed
	}
	select {
	case err := <-r.res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-q.done:
		select {
		case err := <-r.res:
			return err
		default:
			return ErrQueueClosed
		}
	}
}

// Dispose stops the worker goroutine. Commands that have not started yet are
// dropped and their callers get ErrQueueClosed.
//
func (q *Queue) Dispose() {
	q.once.Do(func() { close(q.quit) })
	<-q.done
}
