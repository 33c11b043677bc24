package pubsub

import "context"

type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Stop(ctx context.Context) error
}
