package handler

import (
	"strconv"

	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParamGetter - общий доступ к параметрам маршрута (fiber.Ctx и websocket.Conn)
type ParamGetter interface {
	Params(key string, defaultValue ...string) string
}

func sessionID(c ParamGetter) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidSessionID
	}
	return id, nil
}

func positiveID(c *fiber.Ctx, key string, invalid *errors.AppError) (int64, error) {
	id, err := strconv.ParseInt(c.Params(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}
