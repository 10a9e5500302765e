package services

import (
	"context"
	"encoding/json"
	"nodeBoard/internal/enums"
	"nodeBoard/internal/models"

	"github.com/redis/go-redis/v9"
)

// WhiteboardEventPublisher fans whiteboard events out through redis so every
// instance can forward them to its own sockets.
type WhiteboardEventPublisher struct {
	redis *redis.Client
}

func NewWhiteboardEventPublisher(redis *redis.Client) *WhiteboardEventPublisher {
	return &WhiteboardEventPublisher{
		redis: redis,
	}
}

func (wp *WhiteboardEventPublisher) PublishWhiteboardEvent(ctx context.Context, whiteboardID uint, event string, payload interface{}) error {
	message, err := EncodeWhiteboardEvent(whiteboardID, event, payload)
	if err != nil {
		return err
	}
	return wp.redis.Publish(ctx, enums.REDIS_CHANNEL_WHITEBOARD, message).Err()
}

func EncodeWhiteboardEvent(whiteboardID uint, event string, payload interface{}) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.WhiteboardSocketEvent{
		Event:        event,
		WhiteboardID: whiteboardID,
		Payload:      rawPayload,
	})
}
