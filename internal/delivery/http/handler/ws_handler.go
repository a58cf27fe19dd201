package handler

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/collection-point-service/internal/pkg/errors"
	"github.com/collection-point-service/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const wsPingInterval = 30 * time.Second

// wsMessage - намерение хоста, присланное по WebSocket
type wsMessage struct {
	Action     string `json:"action"` // "toggle" | "select" | "back"
	CategoryID int64  `json:"category_id,omitempty"`
	PointID    int64  `json:"point_id,omitempty"`
}

type wsEvent struct {
	Type  string      `json:"type"` // "snapshot" | "ack" | "error"
	Data  interface{} `json:"data,omitempty"`
	Error interface{} `json:"error,omitempty"`
}

// WSHandler - WebSocket-канал сессии: снапшоты экрана и намерения хоста
type WSHandler struct {
	discoveryUC *usecase.DiscoveryUseCase
	logger      *zap.Logger
}

func NewWSHandler(discoveryUC *usecase.DiscoveryUseCase, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		discoveryUC: discoveryUC,
		logger:      logger,
	}
}

// Upgrade rejects plain HTTP requests to the WebSocket routes.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream pushes a snapshot after every screen state change until the
// session ends or the client disconnects.
func (h *WSHandler) Stream(c *websocket.Conn) {
	defer c.Close()

	var mu sync.Mutex
	writeJSON := func(v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		return c.WriteMessage(websocket.TextMessage, data)
	}

	id, err := sessionID(c)
	if err != nil {
		_ = writeJSON(wsEvent{Type: "error", Error: errors.FromError(err)})
		return
	}

	updates, cancel, err := h.discoveryUC.Subscribe(id)
	if err != nil {
		_ = writeJSON(wsEvent{Type: "error", Error: errors.FromError(err)})
		return
	}
	defer cancel()

	logger := h.logger.With(zap.String("session_id", id.String()))
	logger.Info("WebSocket client connected", zap.String("remote", c.RemoteAddr().String()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					mu.Lock()
					_ = c.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
					mu.Unlock()
					return
				}
				if err := writeJSON(wsEvent{Type: "snapshot", Data: snap}); err != nil {
					return
				}
			case <-ticker.C:
				mu.Lock()
				err := c.WriteMessage(websocket.PingMessage, nil)
				mu.Unlock()
				if err != nil {
					return
				}
				// открытый сокет - активность хоста
				if err := h.discoveryUC.Touch(id); err != nil {
					logger.Debug("Keep-alive for ended session", zap.Error(err))
				}
			}
		}
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = writeJSON(wsEvent{Type: "error", Error: errors.ErrInvalidRequest})
			continue
		}

		result, err := h.dispatch(id, msg)
		if err != nil {
			_ = writeJSON(wsEvent{Type: "error", Error: errors.FromError(err)})
			continue
		}
		_ = writeJSON(wsEvent{Type: "ack", Data: result})
	}

	cancel()
	<-done
	logger.Info("WebSocket client disconnected")
}

func (h *WSHandler) dispatch(id uuid.UUID, msg wsMessage) (interface{}, error) {
	switch msg.Action {
	case "toggle":
		return h.discoveryUC.Toggle(id, msg.CategoryID)
	case "select":
		return h.discoveryUC.SelectMarker(id, msg.PointID)
	case "back":
		return fiber.Map{"action": "back"}, h.discoveryUC.Back(id)
	default:
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"action": msg.Action,
		})
	}
}
