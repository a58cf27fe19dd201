package handler

import (
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/pkg/utils"
	"github.com/collection-point-service/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DetailHandler - обработчик карточки пункта сбора
type DetailHandler struct {
	detailUC *usecase.DetailUseCase
	logger   *zap.Logger
}

// NewDetailHandler - создание нового DetailHandler
func NewDetailHandler(detailUC *usecase.DetailUseCase, logger *zap.Logger) *DetailHandler {
	return &DetailHandler{
		detailUC: detailUC,
		logger:   logger,
	}
}

// GetPoint godoc
// @Summary Collection point detail
// @Description Image, name, accepted items, address and contact links of a point
// @Tags points
// @Produce json
// @Param id path int true "Point ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.PointDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /points/{id} [get]
func (h *DetailHandler) GetPoint(c *fiber.Ctx) error {
	pointID, err := positiveID(c, "id", errors.ErrInvalidPointID)
	if err != nil {
		return utils.SendError(c, err)
	}

	detail, err := h.detailUC.GetPointDetail(c.UserContext(), pointID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, detail, &utils.Meta{
		Total: len(detail.Categories),
	})
}
