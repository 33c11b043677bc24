package pubsub

import (
	"context"
	"time"
)

// SubscribeHandler receives one pack together with its broker timestamp.
// Handlers must tolerate redelivery; the bus is at-least-once.
type SubscribeHandler func(context.Context, *Pack, time.Time)

type Subscriber interface {
	// Subscribe starts consuming and returns once the consumer is ready.
	Subscribe(ctx context.Context)
	Stop(ctx context.Context) error
}
