package repository

import (
	"context"

	"github.com/collection-point-service/internal/domain"
)

// CatalogRepository - интерфейс бэкенда каталога пунктов сбора
type CatalogRepository interface {
	// GetCategories загружает все категории материалов
	GetCategories(ctx context.Context) (*domain.CategoryBatch, error)

	// GetPoints загружает точки для локальности; пустой filter означает "все категории"
	GetPoints(ctx context.Context, city domain.CityContext, filter domain.FilterSet) (*domain.PointBatch, error)

	// GetPointDetail загружает карточку одной точки
	GetPointDetail(ctx context.Context, pointID int64) (*domain.PointDetail, error)
}
