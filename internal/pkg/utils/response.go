package utils

import (
	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/pkg/validator"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total      int    `json:"total,omitempty"`
	Dropped    int    `json:"dropped,omitempty"`
	Generation uint64 `json:"generation,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendAccepted(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.Status(fiber.StatusAccepted).JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	appErr := errors.FromError(err)
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}

// SendValidationError reports failed struct validation as INVALID_REQUEST.
func SendValidationError(c *fiber.Ctx, err error) error {
	return SendError(c, errors.ErrInvalidRequest.WithDetails(validator.Fields(err)))
}
