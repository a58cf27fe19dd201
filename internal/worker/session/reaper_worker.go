package session

import (
	"context"
	"time"

	"github.com/collection-point-service/internal/worker"
	"go.uber.org/zap"
)

// IdleReaper - то, что умеет закрывать простаивающие сессии
type IdleReaper interface {
	ReapIdle(maxIdle time.Duration) int
	ActiveSessions() int
}

// ReaperWorker unmounts discovery sessions whose host went quiet, so an
// abandoned screen does not keep fetches or subscriptions alive.
type ReaperWorker struct {
	*worker.BaseWorker
	sessions IdleReaper
	idleTTL  time.Duration
}

func NewReaperWorker(sessions IdleReaper, idleTTL, interval time.Duration, logger *zap.Logger) *ReaperWorker {
	return &ReaperWorker{
		BaseWorker: worker.NewBaseWorker("session-reaper", interval, logger),
		sessions:   sessions,
		idleTTL:    idleTTL,
	}
}

func (w *ReaperWorker) Start(ctx context.Context) error {
	return w.RunEvery(ctx, func(ctx context.Context) {
		w.ReapOnce()
	})
}

// ReapOnce closes idle sessions and returns how many were closed.
func (w *ReaperWorker) ReapOnce() int {
	reaped := w.sessions.ReapIdle(w.idleTTL)
	if reaped > 0 {
		w.Logger().Info("Reaped idle sessions",
			zap.Int("reaped", reaped),
			zap.Int("active", w.sessions.ActiveSessions()),
			zap.Duration("idle_ttl", w.idleTTL))
	}
	return reaped
}
