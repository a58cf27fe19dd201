package usecase

import (
	"context"
	"sync/atomic"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"go.uber.org/zap"
)

// QueryTag identifies one issued point query by the filter state it was
// issued for.
type QueryTag struct {
	Generation uint64
	Filter     domain.FilterSet
}

// PointQuery fetches points for a city and filter. It performs no caching:
// every call is a full request to the catalog.
type PointQuery struct {
	repo   repository.CatalogRepository
	logger *zap.Logger
	latest atomic.Uint64
}

func NewPointQuery(repo repository.CatalogRepository, logger *zap.Logger) *PointQuery {
	return &PointQuery{
		repo:   repo,
		logger: logger,
	}
}

// Issue tags a new query for filter; it becomes the only fresh one.
func (q *PointQuery) Issue(filter domain.FilterSet) QueryTag {
	return QueryTag{
		Generation: q.latest.Add(1),
		Filter:     filter,
	}
}

// IsLatest reports whether no newer query has been issued since tag.
func (q *PointQuery) IsLatest(tag QueryTag) bool {
	return q.latest.Load() == tag.Generation
}

func (q *PointQuery) Latest() uint64 {
	return q.latest.Load()
}

// Fetch loads points for city with filter. An empty filter requests all points.
func (q *PointQuery) Fetch(
	ctx context.Context,
	city domain.CityContext,
	filter domain.FilterSet,
) (*domain.PointBatch, error) {
	batch, err := q.repo.GetPoints(ctx, city, filter)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchSourcePoints, err)
	}
	return batch, nil
}
