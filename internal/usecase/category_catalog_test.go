package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryCatalog_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("reads the backend once", func(t *testing.T) {
		repo := &MockCatalogRepository{}
		repo.On("GetCategories", mock.Anything).Return(oilAndBatteries, nil).Once()

		c := usecase.NewCategoryCatalog(repo, zap.NewNop())

		first, err := c.Load(ctx)
		require.NoError(t, err)
		second, err := c.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, []int64{1, 2}, domain.CategoryIDs(c.Categories()))
		assert.True(t, c.Contains(2))
		assert.False(t, c.Contains(3))
		repo.AssertExpectations(t)
	})

	t.Run("failure leaves the catalog empty", func(t *testing.T) {
		repo := &MockCatalogRepository{}
		repo.On("GetCategories", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		c := usecase.NewCategoryCatalog(repo, zap.NewNop())

		categories, err := c.Load(ctx)
		var fetchErr *domain.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, domain.FetchSourceCategories, fetchErr.Source)
		assert.Empty(t, categories)
		assert.False(t, c.Contains(1))
	})

	t.Run("keeps the dropped count", func(t *testing.T) {
		repo := &MockCatalogRepository{}
		repo.On("GetCategories", mock.Anything).Return(&domain.CategoryBatch{
			Categories: oilAndBatteries.Categories,
			Dropped:    2,
		}, nil)

		c := usecase.NewCategoryCatalog(repo, zap.NewNop())
		_, err := c.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Dropped())
	})
}
