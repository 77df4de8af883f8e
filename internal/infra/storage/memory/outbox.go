package memory

import (
	"context"
	"sync"

	appoutbox "github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
)

// Publisher receives flushed outbox records. The Kafka producer satisfies
// this; tests plug in capture functions.
type Publisher interface {
	Publish(ctx context.Context, record appoutbox.EventRecord) error
}

// Outbox buffers event records until Flush hands them to the publisher.
// Without a publisher Flush simply discards, which is the dev-mode default.
type Outbox struct {
	mu        sync.Mutex
	records   []appoutbox.EventRecord
	publisher Publisher
}

func NewOutbox(publisher Publisher) *Outbox {
	return &Outbox{publisher: publisher}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.records
	o.records = nil
	o.mu.Unlock()

	if o.publisher == nil {
		return nil
	}
	for _, record := range pending {
		if err := o.publisher.Publish(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

var _ appoutbox.Outbox = (*Outbox)(nil)
