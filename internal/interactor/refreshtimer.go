package interactor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/courierapp/tripsync/internal/metrics"
	"github.com/courierapp/tripsync/internal/taskdomain"
)

// RefreshTimer keeps the trip list fresh while at least one observer is
// registered. The periodic task starts with the first observer and is
// canceled exactly when the last one unregisters, so nothing polls for
// screens nobody is looking at.
type RefreshTimer struct {
	interval time.Duration
	refresh  func()
	domain   *taskdomain.Domain
	logger   *zap.Logger

	mu        sync.Mutex
	observers map[string]struct{}
	stop      chan struct{}
}

func NewRefreshTimer(interval time.Duration, refresh func(), domain *taskdomain.Domain, logger *zap.Logger) *RefreshTimer {
	return &RefreshTimer{
		interval:  interval,
		refresh:   refresh,
		domain:    domain,
		logger:    logger,
		observers: make(map[string]struct{}),
	}
}

// RegisterObserver adds an observer and starts the periodic task if it
// is not already running.
func (t *RefreshTimer) RegisterObserver(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.observers[id] = struct{}{}
	metrics.RefreshObservers.Set(float64(len(t.observers)))

	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop

	t.domain.Go("refresh-timer", func(ctx context.Context) error {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.refresh()
			case <-stop:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// UnregisterObserver removes an observer; the periodic task stops when
// the set becomes empty.
func (t *RefreshTimer) UnregisterObserver(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.observers, id)
	metrics.RefreshObservers.Set(float64(len(t.observers)))

	if len(t.observers) == 0 && t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Stop force-cancels the periodic task regardless of observers.
func (t *RefreshTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.observers = make(map[string]struct{})
	metrics.RefreshObservers.Set(0)
}
