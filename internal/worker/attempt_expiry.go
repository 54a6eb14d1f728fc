package worker

import (
	"context"
	"log/slog"
	"time"

	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/repo"
)

const expiryBatchSize = 100

// AttemptExpiryWorker closes payment attempts whose widget session has run
// past its expiration without a completion or redirect.
type AttemptExpiryWorker struct {
	attempts repo.AttemptRepo
	window   time.Duration
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func NewAttemptExpiryWorker(
	attempts repo.AttemptRepo,
	window time.Duration,
	interval time.Duration,
) *AttemptExpiryWorker {
	return &AttemptExpiryWorker{
		attempts: attempts,
		window:   window,
		interval: interval,
		now:      time.Now,
		logger:   logging.New("attempt-expiry"),
	}
}

func (w *AttemptExpiryWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("attempt expiry worker started", "window", w.window.String(), "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := w.process(ctx); err != nil {
				w.logger.Error("attempt expiry failed", "err", err)
			} else if n > 0 {
				w.logger.Info("expired payment attempts", "count", n)
			}
		}
	}
}

// process expires one batch of stale open attempts and reports how many.
func (w *AttemptExpiryWorker) process(ctx context.Context) (int, error) {
	stale, err := w.attempts.FindOpenBefore(ctx, w.now().Add(-w.window), expiryBatchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, a := range stale {
		if err := w.attempts.Expire(ctx, a.ID); err != nil {
			w.logger.Error("expire attempt", "attempt_id", a.ID, "order_id", a.OrderID, "err", err)
			continue
		}
		w.logger.Info("payment attempt expired", "attempt_id", a.ID, "order_id", a.OrderID, "checkout_session_id", a.CheckoutSessionID)
		expired++
	}
	return expired, nil
}
