package handler

import (
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/pkg/utils"
	"github.com/collection-point-service/internal/pkg/validator"
	"github.com/collection-point-service/internal/usecase"
	"github.com/collection-point-service/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DiscoveryHandler - обработчик сессий поиска пунктов сбора
type DiscoveryHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

// NewDiscoveryHandler - создание нового DiscoveryHandler
func NewDiscoveryHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// OpenSession godoc
// @Summary Open a discovery session
// @Description Mounts a discovery screen for the host device using its reported location
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body dto.OpenSessionRequest true "Reported location"
// @Success 201 {object} utils.SuccessResponse{data=dto.ScreenSnapshot}
// @Failure 400 {object} utils.ErrorResponse
// @Router /sessions [post]
func (h *DiscoveryHandler) OpenSession(c *fiber.Ctx) error {
	var req dto.OpenSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendValidationError(c, err)
	}

	snap, err := h.discoveryUC.Open(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, snap, snapshotMeta(snap))
}

// GetSession godoc
// @Summary Get the discovery screen state
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ScreenSnapshot}
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id} [get]
func (h *DiscoveryHandler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	snap, err := h.discoveryUC.Snapshot(id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, snap, snapshotMeta(snap))
}

// GetMarkersGeoJSON godoc
// @Summary Markers of the current result as GeoJSON
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id}/markers.geojson [get]
func (h *DiscoveryHandler) GetMarkersGeoJSON(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	markers, err := h.discoveryUC.Markers(id)
	if err != nil {
		return utils.SendError(c, err)
	}

	body, err := usecase.FeatureCollection(markers).MarshalJSON()
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}

// ToggleCategory godoc
// @Summary Toggle a category filter
// @Description Flips the category in the filter set and starts a point query; the new filter is returned immediately
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param categoryId path int true "Category ID"
// @Success 202 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Failure 422 {object} utils.ErrorResponse
// @Router /sessions/{id}/filters/{categoryId}/toggle [post]
func (h *DiscoveryHandler) ToggleCategory(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	categoryID, err := positiveID(c, "categoryId", errors.ErrInvalidCategoryID)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.Toggle(id, categoryID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendAccepted(c, result, &utils.Meta{
		Total:      result.Filter.Len(),
		Generation: result.Generation,
	})
}

// SelectMarker godoc
// @Summary Tap a marker
// @Description Hands the point to host navigation
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param pointId path int true "Point ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id}/markers/{pointId}/select [post]
func (h *DiscoveryHandler) SelectMarker(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	pointID, err := positiveID(c, "pointId", errors.ErrInvalidPointID)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.discoveryUC.SelectMarker(id, pointID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Back godoc
// @Summary Leave the screen through back navigation
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id}/back [post]
func (h *DiscoveryHandler) Back(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.discoveryUC.Back(id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CloseSession godoc
// @Summary Close a discovery session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *DiscoveryHandler) CloseSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.discoveryUC.Close(id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func snapshotMeta(snap *dto.ScreenSnapshot) *utils.Meta {
	return &utils.Meta{
		Total:      len(snap.Points),
		Dropped:    snap.Dropped.Points + snap.Dropped.Categories,
		Generation: snap.Generation,
	}
}
