package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event[T] binds a topic name to its payload type so publishers and
// subscribers cannot disagree about the shape of a message.
type Event[T any] struct {
	topicName   string
	description string
}

// NewEvent defines a typed event. Events are declared at package level.
func NewEvent[T any](name, description string) Event[T] {
	return Event[T]{topicName: name, description: description}
}

// Name returns the topic name.
func (e Event[T]) Name() string { return e.topicName }

// Description returns the human readable description of the event.
func (e Event[T]) Description() string { return e.description }

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{Topic: event.Name(), Payload: data})
}

// Subscribe decodes each message on event's topic into T before calling fn.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], fn func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decoding %s payload: %w", event.Name(), err)
		}
		return fn(ctx, payload)
	})
}
