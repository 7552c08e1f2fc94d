// Package taskdomain owns the long-lived background execution domain
// shared by the sync components. It outlives any individual consumer and
// is injected explicitly instead of being reached through globals.
package taskdomain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/metrics"
)

// Domain runs fire-and-forget background tasks. A panic in a task is
// recovered, logged and counted; it never terminates the domain.
type Domain struct {
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func New(logger *zap.Logger) *Domain {
	ctx, cancel := context.WithCancel(context.Background())
	return &Domain{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context is the domain lifetime context; it is canceled on Shutdown.
func (d *Domain) Context() context.Context {
	return d.ctx
}

// Go dispatches a task onto the domain. Errors are logged, not returned:
// callers that need the outcome deliver it through their own channels.
func (d *Domain) Go(name string, task func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.run(name, task); err != nil {
			d.logger.Warn("background task failed",
				zap.String("task", name), zap.Error(err))
		}
	}()
}

func (d *Domain) run(name string, task func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.BackgroundPanicsTotal.Inc()
			err = fmt.Errorf("panic in task %s: %v", name, r)
		}
	}()
	return task(d.ctx)
}

// Shutdown cancels the domain and waits for in-flight tasks, giving up
// when ctx expires.
func (d *Domain) Shutdown(ctx context.Context) {
	d.once.Do(func() {
		d.cancel()

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			d.logger.Info("task domain shutdown completed")
		case <-ctx.Done():
			d.logger.Warn("task domain shutdown interrupted")
		}
	})
}

// Pool bounds concurrency for CPU/IO heavy work (image decoding) so it
// cannot starve the latency-sensitive tasks on the shared domain.
type Pool struct {
	domain *Domain
	sem    chan struct{}
}

func NewPool(domain *Domain, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{domain: domain, sem: make(chan struct{}, size)}
}

// Do runs fn on the pool, blocking until a slot is free or ctx expires.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.domain.ctx.Done():
		return p.domain.ctx.Err()
	}
	defer func() { <-p.sem }()
	return fn()
}

// Sleep waits for d, returning early with the context error if the
// domain shuts down or ctx expires.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
