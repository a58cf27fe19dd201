package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/usecase"
	"github.com/collection-point-service/internal/usecase/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// manualClock - часы, которые двигает только тест
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newDiscoveryUseCase(t *testing.T) (*usecase.DiscoveryUseCase, *MockCatalogRepository, *MockNavigationRepository) {
	t.Helper()
	return newDiscoveryUseCaseWithClock(t, time.Now)
}

func newDiscoveryUseCaseWithClock(t *testing.T, now func() time.Time) (*usecase.DiscoveryUseCase, *MockCatalogRepository, *MockNavigationRepository) {
	t.Helper()

	repo := &MockCatalogRepository{}
	nav := &MockNavigationRepository{}
	uc := usecase.NewDiscoveryUseCase(repo, nav, usecase.DiscoveryConfig{
		City:           macapa,
		Fallback:       fallbackRegion,
		MountTimeout:   2 * time.Second,
		PublishTimeout: time.Second,
		Now:            now,
	}, zap.NewNop())
	t.Cleanup(uc.CloseAll)
	return uc, repo, nav
}

func grantedAt(lat, lon float64) dto.OpenSessionRequest {
	return dto.OpenSessionRequest{Location: dto.LocationReport{
		Permission: "granted",
		Latitude:   &lat,
		Longitude:  &lon,
	}}
}

func TestDiscoveryUseCase_Open(t *testing.T) {
	uc, repo, _ := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1, 2), nil)

	snap, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, snap.SessionID)
	assert.True(t, snap.Mounted)
	require.NotNil(t, snap.Region)
	assert.Equal(t, domain.Coordinate{Latitude: 0.05, Longitude: -51.1}, snap.Region.Center)
	assert.Len(t, snap.Points, 2)
	assert.Equal(t, 1, uc.ActiveSessions())

	again, err := uc.Snapshot(snap.SessionID)
	require.NoError(t, err)
	assert.Equal(t, snap.SessionID, again.SessionID)
}

func TestDiscoveryUseCase_OpenDenied(t *testing.T) {
	uc, repo, _ := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)

	snap, err := uc.Open(context.Background(), dto.OpenSessionRequest{
		Location: dto.LocationReport{Permission: "denied"},
	})
	require.NoError(t, err)

	require.NotNil(t, snap.Region)
	assert.Equal(t, domain.RegionSourceFallback, snap.Region.Source)
	assert.Len(t, snap.Points, 1)
}

func TestDiscoveryUseCase_ToggleAndSelect(t *testing.T) {
	uc, repo, nav := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(3, 7), nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf(2)).Return(pointsBatch(7), nil)
	nav.On("Publish", mock.Anything, mock.MatchedBy(func(e *domain.NavigationEvent) bool {
		return e.Type == domain.NavigationSelectPoint && e.PointID != nil && *e.PointID == 7
	})).Return(nil).Once()

	snap, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)
	id := snap.SessionID

	toggled, err := uc.Toggle(id, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, toggled.Filter.IDs())
	assert.NotZero(t, toggled.Generation)

	_, err = uc.Toggle(id, 0)
	assert.Equal(t, errors.ErrInvalidCategoryID, err)

	_, err = uc.Toggle(id, 5)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	selected, err := uc.SelectMarker(id, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), selected.PointID)
	nav.AssertExpectations(t)
}

func TestDiscoveryUseCase_BackPublishesAndCloses(t *testing.T) {
	uc, repo, nav := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)
	nav.On("Publish", mock.Anything, mock.MatchedBy(func(e *domain.NavigationEvent) bool {
		return e.Type == domain.NavigationGoBack && e.PointID == nil
	})).Return(nil).Once()

	snap, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	updates, _, err := uc.Subscribe(snap.SessionID)
	require.NoError(t, err)

	require.NoError(t, uc.Back(snap.SessionID))
	nav.AssertExpectations(t)

	_, err = uc.Snapshot(snap.SessionID)
	assert.Equal(t, errors.ErrSessionNotFound, err)
	assert.Equal(t, errors.ErrSessionNotFound, uc.Back(snap.SessionID))

	for range updates {
	}
}

func TestDiscoveryUseCase_UnknownSession(t *testing.T) {
	uc, _, _ := newDiscoveryUseCase(t)
	id := uuid.New()

	_, err := uc.Snapshot(id)
	assert.Equal(t, errors.ErrSessionNotFound, err)
	_, err = uc.Toggle(id, 1)
	assert.Equal(t, errors.ErrSessionNotFound, err)
	_, err = uc.SelectMarker(id, 1)
	assert.Equal(t, errors.ErrSessionNotFound, err)
	assert.Equal(t, errors.ErrSessionNotFound, uc.Close(id))
}

func TestDiscoveryUseCase_ReapIdle(t *testing.T) {
	uc, repo, _ := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)

	_, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	assert.Zero(t, uc.ReapIdle(time.Hour))
	assert.Equal(t, 1, uc.ActiveSessions())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, uc.ReapIdle(time.Millisecond))
	assert.Zero(t, uc.ActiveSessions())
}

func TestDiscoveryUseCase_ReapIdleSparesPolledSessions(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	uc, repo, _ := newDiscoveryUseCaseWithClock(t, clock.Now)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)

	polled, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)
	markers, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)
	kept, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)
	abandoned, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		clock.Advance(5 * time.Minute)

		_, err := uc.Snapshot(polled.SessionID)
		require.NoError(t, err)
		_, err = uc.Markers(markers.SessionID)
		require.NoError(t, err)
		require.NoError(t, uc.Touch(kept.SessionID))

		uc.ReapIdle(15 * time.Minute)
	}

	assert.Equal(t, 3, uc.ActiveSessions())
	_, err = uc.Snapshot(abandoned.SessionID)
	assert.Equal(t, errors.ErrSessionNotFound, err)

	clock.Advance(16 * time.Minute)
	assert.Equal(t, 3, uc.ReapIdle(15*time.Minute))
	assert.Zero(t, uc.ActiveSessions())
}

func TestDiscoveryUseCase_SubscribeCountsAsActivity(t *testing.T) {
	clock := &manualClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	uc, repo, _ := newDiscoveryUseCaseWithClock(t, clock.Now)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)

	snap, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	_, cancel, err := uc.Subscribe(snap.SessionID)
	require.NoError(t, err)
	defer cancel()

	clock.Advance(10 * time.Minute)
	assert.Zero(t, uc.ReapIdle(15*time.Minute))
	assert.Equal(t, 1, uc.ActiveSessions())
}

func TestDiscoveryUseCase_TouchUnknownSession(t *testing.T) {
	uc, _, _ := newDiscoveryUseCase(t)
	assert.Equal(t, errors.ErrSessionNotFound, uc.Touch(uuid.New()))
}

func TestDiscoveryUseCase_ClosedSessionSubscriberIsReleased(t *testing.T) {
	uc, repo, _ := newDiscoveryUseCase(t)
	repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil)
	repo.On("GetPoints", mock.Anything, macapa, filterOf()).Return(pointsBatch(1), nil)

	snap, err := uc.Open(context.Background(), grantedAt(0.05, -51.1))
	require.NoError(t, err)

	updates, cancel, err := uc.Subscribe(snap.SessionID)
	require.NoError(t, err)
	defer cancel()
	<-updates

	require.NoError(t, uc.Close(snap.SessionID))

	// последний снапшот (unmounted) может ещё лежать в буфере
	timeout := time.After(time.Second)
	for {
		select {
		case _, open := <-updates:
			if !open {
				return
			}
		case <-timeout:
			t.Fatal("subscription not closed")
		}
	}
}
