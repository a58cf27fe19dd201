package dto

import (
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/google/uuid"
)

// ScreenSnapshot - состояние экрана поиска для хоста
type ScreenSnapshot struct {
	SessionID  uuid.UUID         `json:"session_id"`
	Mounted    bool              `json:"mounted"`
	Region     *domain.Region    `json:"region,omitempty"`
	Categories []domain.Category `json:"categories"`
	Filter     domain.FilterSet  `json:"filter"`
	Points     []domain.Point    `json:"points"`
	Markers    []domain.Marker   `json:"markers"`
	Bounds     *Bounds           `json:"bounds,omitempty"`
	Notices    []domain.Notice   `json:"notices"`
	Generation uint64            `json:"generation"`
	FetchError string            `json:"fetch_error,omitempty"`
	Dropped    DroppedRecords    `json:"dropped"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Bounds - охватывающий прямоугольник маркеров
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// DroppedRecords - число отброшенных некорректных записей бэкенда
type DroppedRecords struct {
	Categories int `json:"categories"`
	Points     int `json:"points"`
}

// ToggleResponse - новый набор фильтров и поколение запроса
type ToggleResponse struct {
	Filter     domain.FilterSet `json:"filter"`
	Generation uint64           `json:"generation"`
}

// SelectResponse - точка, переданная в навигацию
type SelectResponse struct {
	PointID int64 `json:"point_id"`
}

// PointDetailResponse - карточка пункта сбора
type PointDetailResponse struct {
	domain.PointDetail
	Location string `json:"location"`
}
