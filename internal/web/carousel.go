package web

import (
	"context"
	"sync"
	"time"
)

// Carousel holds the selected slide over a sequence of the given length.
// Movement wraps in both directions; with no slides every move is a no-op.
type Carousel struct {
	mu      sync.Mutex
	length  int
	current int
}

func (c *Carousel) SetLength(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n < 0 {
		n = 0
	}
	c.length = n
	if n == 0 {
		c.current = 0
		return
	}
	c.current = wrap(c.current, n)
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.length
}

func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Carousel) Next() int {
	return c.move(func(cur int) int { return cur + 1 })
}

func (c *Carousel) Prev() int {
	return c.move(func(cur int) int { return cur - 1 })
}

func (c *Carousel) Goto(i int) int {
	return c.move(func(int) int { return i })
}

func (c *Carousel) move(to func(cur int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.length == 0 {
		return 0
	}
	c.current = wrap(to(c.current), c.length)
	return c.current
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Rotator advances a carousel on a fixed period between Start and Stop.
type Rotator struct {
	carousel *Carousel
	period   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRotator(c *Carousel, period time.Duration) *Rotator {
	return &Rotator{carousel: c, period: period}
}

// Start begins auto-advance. Calling Start on a running rotator does nothing.
func (r *Rotator) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.carousel.Next()
			}
		}
	}()
}

// Stop cancels auto-advance and waits for the timer goroutine to exit.
func (r *Rotator) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
