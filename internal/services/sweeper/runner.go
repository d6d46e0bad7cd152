// Package sweeper garbage-collects expired revocation records. Expired
// tokens fail verification on their own, so a sweep failure degrades
// nothing; the table just stays larger until the next tick.
package sweeper

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/growtweet/growtweet/internal/domain/session"
)

var (
	sweepPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revocation_sweep_purged_total",
		Help: "Revocation records removed by the sweeper.",
	})
	sweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "revocation_sweep_errors_total",
		Help: "Failed sweep attempts.",
	})
	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "revocation_sweep_duration_seconds",
		Help:    "Duration of a single sweep.",
		Buckets: prometheus.DefBuckets,
	})
)

type Runner struct {
	log      *zap.Logger
	store    session.RevocationStore
	interval time.Duration
	now      func() time.Time
}

func NewRunner(log *zap.Logger, store session.RevocationStore, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Runner{
		log:      log,
		store:    store,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
// Sweep failures are logged and never stop the loop.
func (r *Runner) Run(ctx context.Context) {
	r.sweep(ctx)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep(ctx)
		}
	}
}

func (r *Runner) sweep(ctx context.Context) {
	start := time.Now()
	n, err := r.store.PurgeExpired(ctx, r.now())
	sweepDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		sweepErrors.Inc()
		r.log.Warn("revocation sweep failed", zap.Error(err))
		return
	}
	sweepPurged.Add(float64(n))
	if n > 0 {
		r.log.Info("revocation sweep", zap.Int64("purged", n))
	}
}
