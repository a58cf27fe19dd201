package repository

import (
	"context"

	"github.com/collection-point-service/internal/domain"
)

// NavigationRepository - транспорт событий навигации к роутеру хоста
type NavigationRepository interface {
	Publish(ctx context.Context, event *domain.NavigationEvent) error
}
