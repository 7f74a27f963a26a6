package client

import (
	"context"
	"sync"
)

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "idle"
}

// State is what an observer sees for a query. Data is only set on success
// and Err only on error.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// Query tracks the lifecycle of one logical query. Every fetch supersedes the
// ones before it: a result arriving after a newer fetch has started is
// dropped, so observers only ever see the latest resolved request.
type Query[T any] struct {
	fetch func(ctx context.Context) (T, error)

	mu     sync.Mutex
	seq    uint64
	closed bool
	state  State[T]
}

func NewQuery[T any](fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{fetch: fetch}
}

// Fetch issues a request and waits for it. The returned state is the query's
// state once this request resolved, which belongs to a newer request if this
// one was superseded.
func (q *Query[T]) Fetch(ctx context.Context) State[T] {
	seq, ok := q.begin()
	if !ok {
		return q.State()
	}
	data, err := q.fetch(ctx)
	return q.resolve(seq, data, err)
}

// Start issues a request in the background. The query enters pending before
// Start returns; the channel yields the state after resolution.
func (q *Query[T]) Start(ctx context.Context) <-chan State[T] {
	done := make(chan State[T], 1)

	seq, ok := q.begin()
	if !ok {
		done <- q.State()
		return done
	}

	go func() {
		data, err := q.fetch(ctx)
		done <- q.resolve(seq, data, err)
	}()
	return done
}

func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Close stops observation. In-flight requests still complete but their
// results are discarded.
func (q *Query[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *Query[T]) begin() (uint64, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, false
	}
	q.seq++
	q.state = State[T]{Status: StatusPending}
	return q.seq, true
}

func (q *Query[T]) resolve(seq uint64, data T, err error) State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || seq != q.seq {
		return q.state
	}
	if err != nil {
		q.state = State[T]{Status: StatusError, Err: err}
	} else {
		q.state = State[T]{Status: StatusSuccess, Data: data}
	}
	return q.state
}
