package pubsub

import "context"

// Pack is a message together with its partition key.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
}
