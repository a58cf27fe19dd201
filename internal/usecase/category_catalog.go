package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"go.uber.org/zap"
)

// CategoryCatalog holds the categories of one screen mount. It reads the
// backend at most once; a remount gets a fresh catalog.
type CategoryCatalog struct {
	repo   repository.CatalogRepository
	logger *zap.Logger

	once       sync.Once
	mu         sync.RWMutex
	categories []domain.Category
	ids        map[int64]struct{}
	dropped    int
	err        error
}

func NewCategoryCatalog(repo repository.CatalogRepository, logger *zap.Logger) *CategoryCatalog {
	return &CategoryCatalog{
		repo:   repo,
		logger: logger,
		ids:    make(map[int64]struct{}),
	}
}

// Load fetches the categories. On failure the catalog stays empty.
func (c *CategoryCatalog) Load(ctx context.Context) ([]domain.Category, error) {
	c.once.Do(func() {
		batch, err := c.repo.GetCategories(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()

		if err != nil {
			c.logger.Warn("Failed to load categories", zap.Error(err))
			c.err = domain.NewFetchError(domain.FetchSourceCategories, err)
			return
		}
		c.categories = batch.Categories
		c.dropped = batch.Dropped
		for _, cat := range batch.Categories {
			c.ids[cat.ID] = struct{}{}
		}
	})

	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.categories), c.err
}

// Categories returns the loaded categories in backend order.
func (c *CategoryCatalog) Categories() []domain.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.categories)
}

func (c *CategoryCatalog) Contains(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[id]
	return ok
}

func (c *CategoryCatalog) Dropped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dropped
}
