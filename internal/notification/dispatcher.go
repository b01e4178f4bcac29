package notification

import (
	"context"
	"sync"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"

	"go.uber.org/zap"
)

const defaultSendTimeout = 30 * time.Second

// Dispatcher runs notification work in the background, detached from the
// request that triggered it. Failures are logged and dropped.
type Dispatcher struct {
	wg      sync.WaitGroup
	timeout time.Duration

	sent   metrics.Counter
	failed metrics.Counter
}

type DispatchStats struct {
	Sent   uint64
	Failed uint64
}

func NewDispatcher(timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Dispatcher{timeout: timeout}
}

func (d *Dispatcher) Go(ctx context.Context, task string, fn func(ctx context.Context) error) {
	log := logger.FromCtx(ctx).With(zap.String("task", task))
	detached := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.failed.Inc()
				log.Error("notification panicked", zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		timer := metrics.StartTimer()
		if err := fn(ctx); err != nil {
			d.failed.Inc()
			log.Error("notification failed", zap.Error(err), zap.Duration("duration", timer.Elapsed()))
			return
		}
		d.sent.Inc()
		log.Debug("notification sent", zap.Duration("duration", timer.Elapsed()))
	}()
}

// Wait blocks until all dispatched work has finished. Used on shutdown and
// in tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) Stats() DispatchStats {
	return DispatchStats{Sent: d.sent.Load(), Failed: d.failed.Load()}
}
