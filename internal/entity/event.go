package entity

import "context"

type Publisher interface {
	JetstreamEventInit(ctx context.Context) error
}

type Subscriber interface {
	JetstreamEventSubscribe(ctx context.Context) error
}

// EventPublisher sends one payload to a JetStream subject.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data any) error
}
