package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// streamMaxLen - приблизительный предел длины стрима навигации
const streamMaxLen = 10000

type navigationRepository struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewNavigationRepository создает репозиторий, публикующий события навигации в стрим
func NewNavigationRepository(client *redis.Client, stream string, logger *zap.Logger) repository.NavigationRepository {
	if stream == "" {
		stream = domain.StreamDiscoveryNavigation
	}
	return &navigationRepository{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Publish публикует событие навигации в стрим
func (r *navigationRepository) Publish(ctx context.Context, event *domain.NavigationEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal navigation event: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"session_id": event.SessionID.String(),
			"type":       string(event.Type),
			"data":       string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", r.stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Navigation event published to stream",
		zap.String("stream", r.stream),
		zap.String("type", string(event.Type)),
		zap.String("message_id", result))
	return nil
}
