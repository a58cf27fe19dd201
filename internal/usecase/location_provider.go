package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/pkg/metrics"
	"go.uber.org/zap"
)

// LocationProvider asks the platform for permission once and reads a single
// position fix. The first resolution is cached; later calls never re-prompt.
type LocationProvider struct {
	platform repository.LocationPlatform
	logger   *zap.Logger

	mu       sync.Mutex
	resolved bool
	coord    domain.Coordinate
	err      error
}

func NewLocationProvider(platform repository.LocationPlatform, logger *zap.Logger) *LocationProvider {
	return &LocationProvider{
		platform: platform,
		logger:   logger,
	}
}

// Acquire returns the device coordinate, domain.ErrPermissionDenied or
// domain.ErrLocationUnavailable.
func (p *LocationProvider) Acquire(ctx context.Context) (domain.Coordinate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resolved {
		return p.coord, p.err
	}

	coord, err := p.acquire(ctx)
	if ctx.Err() != nil && err != nil && !errors.Is(err, domain.ErrPermissionDenied) {
		// cancelled before the platform answered: not a resolution
		return domain.Coordinate{}, ctx.Err()
	}

	p.resolved = true
	p.coord, p.err = coord, err

	switch {
	case err == nil:
		metrics.LocationOutcomes.WithLabelValues("granted").Inc()
	case errors.Is(err, domain.ErrPermissionDenied):
		metrics.LocationOutcomes.WithLabelValues("denied").Inc()
	default:
		metrics.LocationOutcomes.WithLabelValues("unavailable").Inc()
	}

	return coord, err
}

func (p *LocationProvider) acquire(ctx context.Context) (domain.Coordinate, error) {
	status, err := p.platform.RequestPermission(ctx)
	if err != nil {
		p.logger.Warn("Location permission request failed", zap.Error(err))
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if status != domain.PermissionGranted {
		p.logger.Info("Location permission not granted", zap.String("status", string(status)))
		return domain.Coordinate{}, domain.ErrPermissionDenied
	}

	coord, err := p.platform.CurrentPosition(ctx)
	if err != nil {
		p.logger.Warn("Failed to read device position", zap.Error(err))
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if coord.IsZero() || !coord.Valid() {
		p.logger.Warn("Platform returned unusable position",
			zap.Float64("lat", coord.Latitude),
			zap.Float64("lon", coord.Longitude))
		return domain.Coordinate{}, fmt.Errorf("%w: unusable position", domain.ErrLocationUnavailable)
	}

	return coord, nil
}
