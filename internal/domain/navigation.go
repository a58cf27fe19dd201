package domain

import (
	"time"

	"github.com/google/uuid"
)

// Navigation stream names
const (
	StreamDiscoveryNavigation = "stream:discovery:navigation"
)

// NavigationBridge receives navigation intents from the discovery engine.
// Calls are fire-and-forget; nothing flows back into the engine.
type NavigationBridge interface {
	SelectPoint(pointID int64)
	GoBack()
}

type NavigationEventType string

const (
	NavigationSelectPoint NavigationEventType = "select_point"
	NavigationGoBack      NavigationEventType = "go_back"
)

// NavigationEvent - событие навигации, публикуемое для роутера хоста
type NavigationEvent struct {
	SessionID uuid.UUID           `json:"session_id"`
	Type      NavigationEventType `json:"type"`
	PointID   *int64              `json:"point_id,omitempty"`
	At        time.Time           `json:"at"`
}
