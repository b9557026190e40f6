package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	LeadMessageKind string = "roi.planner.events.lead"
	defaultTopic    string = "roi.planner.events"
	defaultSource   string = "roi.planner"

	closeTimeout = 5 * time.Second
)

var ErrProducerClosed = errors.New("event producer is closed")

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer is a wrapper around a Writer with a buffer.
// Write only enqueues the message so the caller is never blocked by a slow writer.
// Pending messages are flushed on Close.
type EventProducer struct {
	buffer    *buffer
	notifyCh  chan struct{}
	doneCh    chan struct{}
	stoppedCh chan struct{}
	closeOnce sync.Once
	closed    bool
	mu        sync.RWMutex
	writer    Writer
	topic     string
	source    string
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer:    newBuffer(),
		notifyCh:  make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
		writer:    w,
		topic:     defaultTopic,
		source:    defaultSource,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

func (ep *EventProducer) Write(ctx context.Context, kind string, body io.Reader) error {
	d, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	ep.mu.RLock()
	defer ep.mu.RUnlock()
	if ep.closed {
		return ErrProducerClosed
	}

	ep.buffer.PushBack(&message{
		Kind: kind,
		Data: d,
	})

	// wake up the consumer without blocking if it is already awake
	select {
	case ep.notifyCh <- struct{}{}:
	default:
	}

	return nil
}

// Pending returns the number of messages not yet handed to the writer.
func (ep *EventProducer) Pending() int {
	return ep.buffer.Size()
}

func (ep *EventProducer) Close() error {
	var err error
	ep.closeOnce.Do(func() {
		ep.mu.Lock()
		ep.closed = true
		ep.mu.Unlock()

		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()

		g, ctx := errgroup.WithContext(closeCtx)
		g.Go(func() error {
			close(ep.doneCh)
			select {
			case <-ep.stoppedCh:
			case <-ctx.Done():
				return ctx.Err()
			}
			return ep.writer.Close(ctx)
		})
		if err = g.Wait(); err != nil {
			zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
			return
		}

		zap.S().Named("event_producer").Info("event producer closed")
	})
	return err
}

func (ep *EventProducer) run() {
	defer close(ep.stoppedCh)

	for {
		ep.drain()

		select {
		case <-ep.notifyCh:
		case <-ep.doneCh:
			ep.drain()
			return
		}
	}
}

func (ep *EventProducer) drain() {
	for msg := ep.buffer.Pop(); msg != nil; msg = ep.buffer.Pop() {
		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource(ep.source)
		e.SetType(msg.Kind)
		e.SetTime(time.Now().UTC())
		_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

		if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event_id", e.ID(), "type", e.Type())
		}
	}
}
