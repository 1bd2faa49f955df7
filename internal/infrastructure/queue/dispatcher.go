package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Akhilesh53/authcore/internal/pkg/metrics"
	"github.com/Akhilesh53/authcore/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Message is a single queued notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// MailDispatcher decouples notification delivery from request handling. It
// implements the Notifier port: Send enqueues and returns immediately, so the
// caller's response never waits on SMTP. Messages shard across a fixed set of
// workers by recipient, keeping per-recipient delivery ordered (the reset
// instructions for an address always precede its confirmation).
//
// Delivery failures are logged and counted; the auth flows treat notification
// loss as non-fatal per the reset-flow contract.
type MailDispatcher struct {
	workers  []chan Message
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers:  make([]chan Message, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Message, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send satisfies ports.Notifier. The message is queued on the worker
// responsible for its recipient; the call is non-blocking up to
// channelBuffer capacity.
func (d *MailDispatcher) Send(_ context.Context, to, subject, body string) error {
	idx := d.shardIndex(to)
	d.workers[idx] <- Message{To: to, Subject: subject, Body: body}
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.notifier.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
				metrics.MailDispatchTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailDispatchTotal.WithLabelValues("ok").Inc()
			metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
