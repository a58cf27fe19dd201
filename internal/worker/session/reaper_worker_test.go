package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/collection-point-service/internal/worker"
	"github.com/collection-point-service/internal/worker/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessions struct {
	mu      sync.Mutex
	calls   int
	maxIdle time.Duration
	active  int
}

func (f *fakeSessions) ReapIdle(maxIdle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.maxIdle = maxIdle
	if f.active == 0 {
		return 0
	}
	f.active--
	return 1
}

func (f *fakeSessions) ActiveSessions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *fakeSessions) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestReaperWorker_ReapOnce(t *testing.T) {
	sessions := &fakeSessions{active: 1}
	w := session.NewReaperWorker(sessions, 15*time.Minute, time.Minute, zap.NewNop())

	assert.Equal(t, 1, w.ReapOnce())
	assert.Equal(t, 15*time.Minute, sessions.maxIdle)
	assert.Equal(t, 0, w.ReapOnce())
	assert.Equal(t, "session-reaper", w.Name())
}

func TestReaperWorker_RunsUnderManager(t *testing.T) {
	sessions := &fakeSessions{active: 3}
	w := session.NewReaperWorker(sessions, time.Millisecond, 5*time.Millisecond, zap.NewNop())

	manager := worker.NewWorkerManager(zap.NewNop())
	manager.Register(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, manager.Start(ctx))

	assert.Eventually(t, func() bool {
		return sessions.ActiveSessions() == 0 && sessions.Calls() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, manager.Stop())
	assert.True(t, w.IsStopped())
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	manager := worker.NewWorkerManager(zap.NewNop())
	assert.Error(t, manager.Start(context.Background()))
}
