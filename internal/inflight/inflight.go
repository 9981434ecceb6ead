// Package inflight counts background work so callers can wait for it to
// settle. Unlike sync.WaitGroup, Add may run at any time, including while
// another goroutine is blocked in Wait.
package inflight

import "sync"

type Counter struct {
	mu   sync.Mutex
	cond *sync.Cond
	n    int
}

func (c *Counter) init() {
	if c.cond == nil {
		c.cond = sync.NewCond(&c.mu)
	}
}

func (c *Counter) Add() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.n++
}

// Done marks one unit of work finished. It panics when nothing is in
// flight.
func (c *Counter) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	if c.n == 0 {
		panic("inflight: Done without matching Add")
	}
	c.n--
	if c.n == 0 {
		c.cond.Broadcast()
	}
}

// Wait blocks until nothing is in flight. Work added while waiting is
// waited for too.
func (c *Counter) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	for c.n > 0 {
		c.cond.Wait()
	}
}

func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
