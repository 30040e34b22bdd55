// Copyright 2026 The go-spectral Authors. SPDX-License-Identifier: Apache-2.0

package budget

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Controller tracks memory reservations against a hard limit. It is for
// drivers that want stronger discipline than the advisory Fits check: each
// large output is reserved before allocation and released after the buffer
// is dropped.
//
// A nil Controller performs no accounting and never blocks.
type Controller struct {
	limit int64
	sem   *semaphore.Weighted
	used  atomic.Int64
}

// NewController creates a controller enforcing the given byte limit.
// If limitBytes <= 0, reservations are tracked but never limited.
func NewController(limitBytes int64) *Controller {
	if limitBytes < 0 {
		limitBytes = 0
	}
	c := &Controller{limit: limitBytes}
	if limitBytes > 0 {
		c.sem = semaphore.NewWeighted(limitBytes)
	}
	return c
}

// Reserve blocks until bytes of budget are available or ctx is canceled.
func (c *Controller) Reserve(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.sem != nil {
		if err := c.sem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.used.Add(bytes)
	return nil
}

// TryReserve reserves without blocking. Returns false if the budget is
// exhausted.
func (c *Controller) TryReserve(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}
	if c.sem != nil && !c.sem.TryAcquire(bytes) {
		return false
	}
	c.used.Add(bytes)
	return true
}

// Release returns bytes of budget. Must match a prior reservation.
func (c *Controller) Release(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.sem != nil {
		c.sem.Release(bytes)
	}
	c.used.Add(-bytes)
}

// InUse returns the currently reserved byte count.
func (c *Controller) InUse() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// Limit returns the configured byte limit (0 = unlimited).
func (c *Controller) Limit() int64 {
	if c == nil {
		return 0
	}
	return c.limit
}
