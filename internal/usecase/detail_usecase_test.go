package usecase_test

import (
	"context"
	"testing"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetailUseCase_GetPointDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &MockCatalogRepository{}
		repo.On("GetPointDetail", mock.Anything, int64(7)).Return(&domain.PointDetail{
			Point:      domain.Point{ID: 7, Name: "Mercado do Jose"},
			Categories: []string{"Oil", "Batteries"},
			Address:    "Rua Leopoldo Machado, 100",
			City:       "Macapa",
			Region:     "AP",
			WhatsApp:   "+55 96 99999-0000",
			Contacts:   domain.BuildContactLinks("", "+55 96 99999-0000"),
		}, nil)

		uc := usecase.NewDetailUseCase(repo, zap.NewNop())
		detail, err := uc.GetPointDetail(ctx, 7)
		require.NoError(t, err)

		assert.Equal(t, "Macapa - AP, Rua Leopoldo Machado, 100", detail.Location)
		assert.Equal(t, "https://wa.me/5596999990000", detail.Contacts.WhatsApp)
		assert.Equal(t, []string{"Oil", "Batteries"}, detail.Categories)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := usecase.NewDetailUseCase(&MockCatalogRepository{}, zap.NewNop())
		_, err := uc.GetPointDetail(ctx, 0)
		assert.Equal(t, errors.ErrInvalidPointID, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &MockCatalogRepository{}
		repo.On("GetPointDetail", mock.Anything, int64(8)).Return(nil, domain.ErrPointNotFound)

		uc := usecase.NewDetailUseCase(repo, zap.NewNop())
		_, err := uc.GetPointDetail(ctx, 8)
		assert.ErrorIs(t, err, domain.ErrPointNotFound)
	})
}
