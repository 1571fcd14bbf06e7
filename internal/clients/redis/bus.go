package redis

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"
  goredis "github.com/redis/go-redis/v9"
  "github.com/leveluphq/levelup-backend/internal/logger"
  "github.com/leveluphq/levelup-backend/internal/sse"
  "github.com/leveluphq/levelup-backend/internal/utils"
)

// EventBus fans events out across instances: services publish here, each
// instance forwards into its local SSE hub.
type EventBus interface {
  Publish(ctx context.Context, msg sse.SSEMessage) error
  StartForwarder(ctx context.Context, onMsg func(m sse.SSEMessage)) error
  Close() error
}

type eventBus struct {
  log     *logger.Logger
  rdb     *goredis.Client
  channel string
}

func NewEventBus(log *logger.Logger) (EventBus, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }
  ch := strings.TrimSpace(utils.GetEnv("REDIS_CHANNEL", "levelup.events", log))

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &eventBus{
    log:     log.With("service", "RedisEventBus"),
    rdb:     rdb,
    channel: ch,
  }, nil
}

func (b *eventBus) Publish(ctx context.Context, msg sse.SSEMessage) error {
  if b == nil || b.rdb == nil {
    return fmt.Errorf("redis event bus not initialized")
  }
  raw, err := json.Marshal(msg)
  if err != nil {
    return err
  }
  return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *eventBus) StartForwarder(ctx context.Context, onMsg func(m sse.SSEMessage)) error {
  if b == nil || b.rdb == nil {
    return fmt.Errorf("redis event bus not initialized")
  }
  sub := b.rdb.Subscribe(ctx, b.channel)
  if _, err := sub.Receive(ctx); err != nil {
    _ = sub.Close()
    return fmt.Errorf("redis subscribe: %w", err)
  }
  go func() {
    defer sub.Close()
    msgCh := sub.Channel()
    for {
      select {
      case <-ctx.Done():
        return
      case m, ok := <-msgCh:
        if !ok {
          return
        }
        var parsed sse.SSEMessage
        if err := json.Unmarshal([]byte(m.Payload), &parsed); err != nil {
          b.log.Warn("Failed to decode event bus payload", "error", err)
          continue
        }
        onMsg(parsed)
      }
    }
  }()
  return nil
}

func (b *eventBus) Close() error {
  if b == nil || b.rdb == nil {
    return nil
  }
  return b.rdb.Close()
}
