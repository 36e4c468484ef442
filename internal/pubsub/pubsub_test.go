package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeting struct {
	Name string `json:"name"`
}

var greeted = NewEvent[greeting]("test.greeted", "someone was greeted")

func TestWatermillBridge(t *testing.T) {
	bus := NewWatermillBridge(nil)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan Message, 1)
	require.NoError(t, bus.Subscribe(ctx, "test.raw", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	}))

	require.NoError(t, bus.Publish(ctx, Message{
		Topic:    "test.raw",
		Payload:  []byte("hello"),
		Metadata: map[string]string{"section": "safe-isolation"},
	}))

	select {
	case msg := <-received:
		assert.Equal(t, "test.raw", msg.Topic)
		assert.Equal(t, []byte("hello"), msg.Payload)
		assert.Equal(t, "safe-isolation", msg.Metadata["section"])
		assert.NotContains(t, msg.Metadata, metaKeyTopic)
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestTypedEvents(t *testing.T) {
	bus := NewWatermillBridge(nil)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu    sync.Mutex
		names []string
	)
	require.NoError(t, Subscribe(ctx, bus, greeted, func(ctx context.Context, g greeting) error {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, g.Name)
		return nil
	}))

	// A payload that cannot be decoded is dropped, not redelivered forever.
	require.NoError(t, bus.Publish(ctx, Message{Topic: greeted.Name(), Payload: []byte("{")}))
	require.NoError(t, Publish(ctx, bus, greeted, greeting{Name: "Sam"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(names) == 1 && names[0] == "Sam"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "test.greeted", greeted.Name())
}

func TestCloseWaitsForHandlers(t *testing.T) {
	bus := NewWatermillBridge(nil)
	ctx := context.Background()

	started := make(chan struct{})
	var finished bool
	require.NoError(t, Subscribe(ctx, bus, greeted, func(ctx context.Context, g greeting) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished = true
		return nil
	}))
	require.NoError(t, Publish(ctx, bus, greeted, greeting{Name: "apprentice"}))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
	require.NoError(t, bus.Close())
	assert.True(t, finished)
}
