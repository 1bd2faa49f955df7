package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	mu       sync.Mutex
	messages []Message
	fail     bool
}

func (n *captureNotifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("delivery refused")
	}
	n.messages = append(n.messages, Message{To: to, Subject: subject, Body: body})
	return nil
}

func (n *captureNotifier) delivered() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, len(n.messages))
	copy(out, n.messages)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestDispatcherDeliversQueuedMail(t *testing.T) {
	sink := &captureNotifier{}
	d := NewMailDispatcher(2, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	require.NoError(t, d.Send(ctx, "a@example.com", "subject a", "body a"))
	require.NoError(t, d.Send(ctx, "b@example.com", "subject b", "body b"))

	waitFor(t, func() bool { return len(sink.delivered()) == 2 })
}

func TestDispatcherPreservesPerRecipientOrder(t *testing.T) {
	sink := &captureNotifier{}
	d := NewMailDispatcher(4, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Send(ctx, "same@example.com", "s", string(rune('0'+i))))
	}
	waitFor(t, func() bool { return len(sink.delivered()) == 5 })

	var got []string
	for _, m := range sink.delivered() {
		got = append(got, m.Body)
	}
	require.Equal(t, []string{"0", "1", "2", "3", "4"}, got)
}

func TestDispatcherSendNeverFails(t *testing.T) {
	sink := &captureNotifier{fail: true}
	d := NewMailDispatcher(1, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Delivery failure surfaces in logs and metrics, never to the caller.
	require.NoError(t, d.Send(ctx, "c@example.com", "s", "b"))
}

func TestDispatcherStopsOnContextCancel(t *testing.T) {
	sink := &captureNotifier{}
	d := NewMailDispatcher(1, sink, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	// Workers drain out; a message queued after cancellation may sit in the
	// buffer but must not panic.
	require.NoError(t, d.Send(context.Background(), "d@example.com", "s", "b"))
}
