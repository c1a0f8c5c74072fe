package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// VerificationPurger exposes the subset of application functionality required by the sweeper.
type VerificationPurger interface {
	PurgeExpiredVerifications(ctx context.Context, limit int) (int64, error)
}

// TokenSweeper periodically deletes expired email verification tokens.
type TokenSweeper struct {
	purger   VerificationPurger
	interval time.Duration
	batch    int
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewTokenSweeper constructs the background sweeper.
func NewTokenSweeper(purger VerificationPurger, interval time.Duration, batch int, logger *slog.Logger) *TokenSweeper {
	if batch <= 0 {
		batch = 1
	}
	return &TokenSweeper{
		purger:   purger,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *TokenSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (s *TokenSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *TokenSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep keeps deleting in batches until a batch comes back short, so a large
// backlog does not wait for the next tick.
func (s *TokenSweeper) sweep(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		deleted, err := s.purger.PurgeExpiredVerifications(ctx, s.batch)
		if err != nil {
			s.logger.Error("purge expired verification tokens failed", slog.String("error", err.Error()))
			return
		}
		if deleted > 0 {
			s.logger.Info("purged expired verification tokens", slog.Int64("count", deleted))
		}
		if deleted < int64(s.batch) {
			return
		}
	}
}
