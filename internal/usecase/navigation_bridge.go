package usecase

import (
	"context"
	"time"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// streamBridge publishes the navigation intents of one session. Publishing
// failures are logged and counted; the engine never waits on the host router.
type streamBridge struct {
	sessionID uuid.UUID
	repo      repository.NavigationRepository
	timeout   time.Duration
	logger    *zap.Logger
}

func NewNavigationBridge(
	sessionID uuid.UUID,
	repo repository.NavigationRepository,
	timeout time.Duration,
	logger *zap.Logger,
) domain.NavigationBridge {
	return &streamBridge{
		sessionID: sessionID,
		repo:      repo,
		timeout:   timeout,
		logger:    logger,
	}
}

func (b *streamBridge) SelectPoint(pointID int64) {
	b.publish(domain.NavigationSelectPoint, &pointID)
}

func (b *streamBridge) GoBack() {
	b.publish(domain.NavigationGoBack, nil)
}

func (b *streamBridge) publish(eventType domain.NavigationEventType, pointID *int64) {
	event := &domain.NavigationEvent{
		SessionID: b.sessionID,
		Type:      eventType,
		PointID:   pointID,
		At:        time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	if err := b.repo.Publish(ctx, event); err != nil {
		metrics.NavigationEvents.WithLabelValues(string(eventType), "error").Inc()
		b.logger.Error("Failed to publish navigation event",
			zap.String("session_id", b.sessionID.String()),
			zap.String("type", string(eventType)),
			zap.Error(err))
		return
	}

	metrics.NavigationEvents.WithLabelValues(string(eventType), "ok").Inc()
	b.logger.Debug("Navigation event published",
		zap.String("session_id", b.sessionID.String()),
		zap.String("type", string(eventType)))
}
