package queue

import amqp "github.com/rabbitmq/amqp091-go"

// Item couples one decoded message with its broker acknowledgement. A
// message stays unacknowledged (and therefore redeliverable) until the batch
// it belongs to settles one way or the other.
type Item[T any] struct {
	Value T

	acker amqp.Acknowledger
	tag   uint64
}

func newItem[T any](value T, acker amqp.Acknowledger, tag uint64) *Item[T] {
	return &Item[T]{Value: value, acker: acker, tag: tag}
}

// Accept acknowledges the message.
func (i *Item[T]) Accept() error {
	return i.acker.Ack(i.tag, false)
}

// Reject returns the message to the broker for redelivery, or drops it when
// requeue is false.
func (i *Item[T]) Reject(requeue bool) error {
	return i.acker.Reject(i.tag, requeue)
}
