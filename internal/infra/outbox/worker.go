package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultRetryDelay   = 5 * time.Second
	defaultSource       = "app://stays"
)

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker drains the durable outbox and publishes each record as a
// CloudEvents envelope. The topic derives from the event name prefix:
// booking.confirmed goes to booking.events.v1, listing.approved to
// listing.events.v1. Failed deliveries are rescheduled with the
// configured backoff and retried on a later tick.
type Worker struct {
	Store       *Store
	Producer    Producer
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
}

// cloudEvent is the JSON envelope published to Kafka.
type cloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Source          string          `json:"source"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	Data            json.RawMessage `json:"data"`
}

// Run polls until ctx is cancelled. One record is claimed per tick;
// the claim carries the worker id so a crashed worker's records become
// visible again after the claim lease lapses.
func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	interval := w.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	workerID := w.ID
	if workerID == "" {
		workerID = uuid.NewString()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.dispatchNext(ctx, workerID); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) dispatchNext(ctx context.Context, workerID string) error {
	doc, err := w.Store.Claim(ctx, workerID)
	if err != nil || doc == nil {
		return err
	}
	payload, err := w.envelope(doc)
	if err != nil {
		_ = w.Store.MarkFailed(ctx, doc.ID, w.retryAt(doc.Attempts), err.Error())
		return nil
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range doc.Headers {
		headers[k] = v
	}
	if err := w.Producer.Publish(ctx, w.topicFor(doc.Name), doc.Aggregate, payload, headers); err != nil {
		_ = w.Store.MarkFailed(ctx, doc.ID, w.retryAt(doc.Attempts), err.Error())
		return nil
	}
	return w.Store.MarkSent(ctx, doc.ID)
}

func (w *Worker) envelope(doc *EventDocument) ([]byte, error) {
	if !json.Valid(doc.Payload) {
		return nil, errors.New("outbox: event payload is not valid JSON")
	}
	source := w.Source
	if source == "" {
		source = defaultSource
	}
	return json.Marshal(cloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.NewString(),
		Type:            doc.Name + ".v1",
		Source:          source,
		Time:            doc.OccurredAt,
		DataContentType: "application/json",
		Data:            json.RawMessage(doc.Payload),
	})
}

func (w *Worker) topicFor(name string) string {
	domain, _, _ := strings.Cut(name, ".")
	return w.TopicPrefix + domain + ".events.v1"
}

func (w *Worker) retryAt(attempts int) time.Time {
	delay := defaultRetryDelay
	switch {
	case attempts < len(w.Backoff):
		delay = w.Backoff[attempts]
	case len(w.Backoff) > 0:
		delay = w.Backoff[len(w.Backoff)-1]
	}
	return time.Now().Add(delay)
}
