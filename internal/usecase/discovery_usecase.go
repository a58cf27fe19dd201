package usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/infrastructure/geolocation"
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DiscoveryConfig - параметры сессий поиска
type DiscoveryConfig struct {
	City           domain.CityContext
	Fallback       domain.Region
	MountTimeout   time.Duration
	PublishTimeout time.Duration
	// Now - часы сессий; по умолчанию time.Now
	Now func() time.Time
}

// DiscoveryUseCase keeps one DiscoveryScreen per open host session.
type DiscoveryUseCase struct {
	catalog    repository.CatalogRepository
	navigation repository.NavigationRepository
	cfg        DiscoveryConfig
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*DiscoveryScreen
}

func NewDiscoveryUseCase(
	catalog repository.CatalogRepository,
	navigation repository.NavigationRepository,
	cfg DiscoveryConfig,
	logger *zap.Logger,
) *DiscoveryUseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &DiscoveryUseCase{
		catalog:    catalog,
		navigation: navigation,
		cfg:        cfg,
		logger:     logger,
		now:        now,
		sessions:   make(map[uuid.UUID]*DiscoveryScreen),
	}
}

// Open creates a session and mounts its screen. A mount that outlives
// MountTimeout keeps loading in the background; the caller gets whatever
// has arrived so far.
func (uc *DiscoveryUseCase) Open(ctx context.Context, req dto.OpenSessionRequest) (*dto.ScreenSnapshot, error) {
	id := uuid.New()
	platform := geolocation.NewReported(toReport(req.Location))

	screen := NewDiscoveryScreen(ScreenConfig{
		ID:       id,
		Catalog:  uc.catalog,
		Location: NewLocationProvider(platform, uc.logger),
		Bridge:   NewNavigationBridge(id, uc.navigation, uc.cfg.PublishTimeout, uc.logger),
		City:     uc.cfg.City,
		Fallback: uc.cfg.Fallback,
		Logger:   uc.logger,
		Now:      uc.now,
	})

	uc.mu.Lock()
	uc.sessions[id] = screen
	uc.mu.Unlock()

	mountCtx := ctx
	if uc.cfg.MountTimeout > 0 {
		var cancel context.CancelFunc
		mountCtx, cancel = context.WithTimeout(ctx, uc.cfg.MountTimeout)
		defer cancel()
	}

	if err := screen.Mount(mountCtx); err != nil {
		if !stderrors.Is(err, context.DeadlineExceeded) {
			uc.remove(id)
			screen.Unmount()
			return nil, err
		}
		uc.logger.Warn("Mount still loading after timeout",
			zap.String("session_id", id.String()),
			zap.Duration("timeout", uc.cfg.MountTimeout))
	}

	uc.logger.Info("Discovery session opened",
		zap.String("session_id", id.String()),
		zap.String("permission", req.Location.Permission))

	snap := screen.Snapshot()
	return &snap, nil
}

func (uc *DiscoveryUseCase) Snapshot(id uuid.UUID) (*dto.ScreenSnapshot, error) {
	screen, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	snap := screen.Snapshot()
	return &snap, nil
}

// Markers returns the markers of the latest applied result.
func (uc *DiscoveryUseCase) Markers(id uuid.UUID) ([]domain.Marker, error) {
	screen, err := uc.get(id)
	if err != nil {
		return nil, err
	}
	return screen.Markers(), nil
}

func (uc *DiscoveryUseCase) Toggle(id uuid.UUID, categoryID int64) (*dto.ToggleResponse, error) {
	if categoryID <= 0 {
		return nil, errors.ErrInvalidCategoryID
	}
	screen, err := uc.get(id)
	if err != nil {
		return nil, err
	}

	filter, tag, err := screen.Toggle(categoryID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleResponse{Filter: filter, Generation: tag.Generation}, nil
}

func (uc *DiscoveryUseCase) SelectMarker(id uuid.UUID, pointID int64) (*dto.SelectResponse, error) {
	if pointID <= 0 {
		return nil, errors.ErrInvalidPointID
	}
	screen, err := uc.get(id)
	if err != nil {
		return nil, err
	}

	if err := screen.SelectMarker(pointID); err != nil {
		return nil, err
	}
	return &dto.SelectResponse{PointID: pointID}, nil
}

// Back sends the back intent and ends the session.
func (uc *DiscoveryUseCase) Back(id uuid.UUID) error {
	screen, err := uc.get(id)
	if err != nil {
		return err
	}
	uc.remove(id)
	screen.Back()
	screen.CloseSubscribers()
	return nil
}

// Close ends the session without any navigation.
func (uc *DiscoveryUseCase) Close(id uuid.UUID) error {
	screen, err := uc.get(id)
	if err != nil {
		return err
	}
	uc.remove(id)
	screen.Unmount()
	screen.CloseSubscribers()

	uc.logger.Info("Discovery session closed", zap.String("session_id", id.String()))
	return nil
}

// Touch keeps an idle session alive, e.g. on WebSocket keep-alive ticks.
func (uc *DiscoveryUseCase) Touch(id uuid.UUID) error {
	screen, err := uc.get(id)
	if err != nil {
		return err
	}
	screen.Touch()
	return nil
}

func (uc *DiscoveryUseCase) Subscribe(id uuid.UUID) (<-chan dto.ScreenSnapshot, func(), error) {
	screen, err := uc.get(id)
	if err != nil {
		return nil, nil, err
	}
	updates, cancel := screen.Subscribe()
	return updates, cancel, nil
}

// ReapIdle closes sessions without host interaction for longer than maxIdle.
func (uc *DiscoveryUseCase) ReapIdle(maxIdle time.Duration) int {
	now := uc.now()

	uc.mu.Lock()
	var idle []*DiscoveryScreen
	for id, screen := range uc.sessions {
		if screen.IdleFor(now) > maxIdle {
			idle = append(idle, screen)
			delete(uc.sessions, id)
		}
	}
	uc.mu.Unlock()

	for _, screen := range idle {
		screen.Unmount()
		screen.CloseSubscribers()
		uc.logger.Info("Idle discovery session reaped", zap.String("session_id", screen.ID().String()))
	}
	return len(idle)
}

func (uc *DiscoveryUseCase) ActiveSessions() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

// CloseAll ends every session; used on shutdown.
func (uc *DiscoveryUseCase) CloseAll() {
	uc.mu.Lock()
	screens := make([]*DiscoveryScreen, 0, len(uc.sessions))
	for id, screen := range uc.sessions {
		screens = append(screens, screen)
		delete(uc.sessions, id)
	}
	uc.mu.Unlock()

	for _, screen := range screens {
		screen.Unmount()
		screen.CloseSubscribers()
	}
}

func (uc *DiscoveryUseCase) get(id uuid.UUID) (*DiscoveryScreen, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	screen, ok := uc.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return screen, nil
}

func (uc *DiscoveryUseCase) remove(id uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.sessions, id)
}

func toReport(r dto.LocationReport) geolocation.Report {
	report := geolocation.Report{
		Permission: domain.PermissionStatus(r.Permission),
		Error:      r.Error,
	}
	if r.Latitude != nil && r.Longitude != nil {
		report.Position = &domain.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return report
}
