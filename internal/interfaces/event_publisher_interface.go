package interfaces

import "context"

type EventPublisher interface {
	PublishWhiteboardEvent(ctx context.Context, whiteboardID uint, event string, payload interface{}) error
}
