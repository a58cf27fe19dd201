package usecase_test

import (
	"context"
	"sync"

	"github.com/collection-point-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetCategories(ctx context.Context) (*domain.CategoryBatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryBatch), args.Error(1)
}

func (m *MockCatalogRepository) GetPoints(ctx context.Context, city domain.CityContext, filter domain.FilterSet) (*domain.PointBatch, error) {
	args := m.Called(ctx, city, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointBatch), args.Error(1)
}

func (m *MockCatalogRepository) GetPointDetail(ctx context.Context, pointID int64) (*domain.PointDetail, error) {
	args := m.Called(ctx, pointID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointDetail), args.Error(1)
}

// MockNavigationRepository is a mock of NavigationRepository
type MockNavigationRepository struct {
	mock.Mock
}

func (m *MockNavigationRepository) Publish(ctx context.Context, event *domain.NavigationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// filterOf matches a FilterSet argument by content.
func filterOf(ids ...int64) interface{} {
	want := domain.NewFilterSet(ids...)
	return mock.MatchedBy(func(f domain.FilterSet) bool { return f.Equal(want) })
}

type fakePlatform struct {
	mu              sync.Mutex
	permission      domain.PermissionStatus
	position        domain.Coordinate
	positionErr     error
	permissionCalls int
	positionCalls   int
}

func (p *fakePlatform) RequestPermission(ctx context.Context) (domain.PermissionStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.permissionCalls++
	return p.permission, nil
}

func (p *fakePlatform) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positionCalls++
	return p.position, p.positionErr
}

func (p *fakePlatform) calls() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permissionCalls, p.positionCalls
}

type recordingBridge struct {
	mu       sync.Mutex
	selected []int64
	backs    int
}

func (b *recordingBridge) SelectPoint(pointID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = append(b.selected, pointID)
}

func (b *recordingBridge) GoBack() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.backs++
}

func (b *recordingBridge) Selected() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.selected...)
}

func (b *recordingBridge) Backs() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.backs
}

var (
	macapa = domain.CityContext{City: "Macapa", Region: "AP"}

	fallbackRegion = domain.Region{
		Center:         domain.Coordinate{Latitude: 0.0349, Longitude: -51.0694},
		LatitudeDelta:  0.029,
		LongitudeDelta: 0.029,
		Source:         domain.RegionSourceFallback,
	}

	oilAndBatteries = &domain.CategoryBatch{Categories: []domain.Category{
		{ID: 1, Label: "Oil"},
		{ID: 2, Label: "Batteries"},
	}}
)

func pointsBatch(ids ...int64) *domain.PointBatch {
	batch := &domain.PointBatch{}
	for _, id := range ids {
		batch.Points = append(batch.Points, domain.Point{
			ID:   id,
			Name: "Point " + string(rune('A'+id%26)),
			Coordinate: domain.Coordinate{
				Latitude:  0.03 + float64(id)/1000,
				Longitude: -51.06 - float64(id)/1000,
			},
		})
	}
	return batch
}

func pointIDs(points []domain.Point) []int64 {
	ids := make([]int64, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}
	return ids
}
