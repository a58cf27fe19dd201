package usecase

import (
	"context"

	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/usecase/dto"
	"go.uber.org/zap"
)

type DetailUseCase struct {
	catalog repository.CatalogRepository
	logger  *zap.Logger
}

func NewDetailUseCase(
	catalog repository.CatalogRepository,
	logger *zap.Logger,
) *DetailUseCase {
	return &DetailUseCase{
		catalog: catalog,
		logger:  logger,
	}
}

// GetPointDetail loads the detail card the host shows after a marker tap.
func (uc *DetailUseCase) GetPointDetail(ctx context.Context, pointID int64) (*dto.PointDetailResponse, error) {
	if pointID <= 0 {
		return nil, errors.ErrInvalidPointID
	}

	detail, err := uc.catalog.GetPointDetail(ctx, pointID)
	if err != nil {
		uc.logger.Error("Failed to get point detail",
			zap.Int64("point_id", pointID),
			zap.Error(err))
		return nil, err
	}

	return &dto.PointDetailResponse{
		PointDetail: *detail,
		Location:    detail.Location(),
	}, nil
}
