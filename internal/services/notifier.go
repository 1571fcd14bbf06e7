package services

import (
  "context"
  "github.com/leveluphq/levelup-backend/internal/sse"
)

// EventPublisher is what the domain services emit notifications through.
// Backed by the redis bus when configured, otherwise the local hub.
type EventPublisher interface {
  Publish(ctx context.Context, msg sse.SSEMessage) error
}

type hubPublisher struct {
  hub *sse.SSEHub
}

func NewHubPublisher(hub *sse.SSEHub) EventPublisher {
  return &hubPublisher{hub: hub}
}

func (hp *hubPublisher) Publish(ctx context.Context, msg sse.SSEMessage) error {
  hp.hub.Broadcast(msg)
  return nil
}
