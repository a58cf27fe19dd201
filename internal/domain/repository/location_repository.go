package repository

import (
	"context"

	"github.com/collection-point-service/internal/domain"
)

// LocationPlatform - платформенный сервис геолокации устройства
type LocationPlatform interface {
	// RequestPermission показывает системный запрос разрешения
	RequestPermission(ctx context.Context) (domain.PermissionStatus, error)

	// CurrentPosition возвращает однократный снимок позиции
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}
