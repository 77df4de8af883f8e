package outbox

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appoutbox "github.com/Grace-nduta/Airbnb-Platform/internal/app/outbox"
)

const outboxCollection = "outbox_events"

const (
	stateNew     = "NEW"
	stateClaimed = "CLAIMED"
	stateSent    = "SENT"
	stateFailed  = "FAILED"
)

// EventDocument is the persisted form of a pending event. NEW and FAILED
// records with a due next_attempt_at are eligible for claiming.
type EventDocument struct {
	ID          string            `bson:"_id"`
	Name        string            `bson:"name"`
	Payload     []byte            `bson:"payload"`
	OccurredAt  time.Time         `bson:"occurred_at"`
	Aggregate   string            `bson:"aggregate"`
	Headers     map[string]string `bson:"headers"`
	State       string            `bson:"state"`
	Attempts    int               `bson:"attempts"`
	NextAttempt time.Time         `bson:"next_attempt_at"`
	ClaimedBy   string            `bson:"claimed_by,omitempty"`
	ClaimedAt   time.Time         `bson:"claimed_at,omitempty"`
	SentAt      time.Time         `bson:"sent_at,omitempty"`
	LastError   string            `bson:"last_error,omitempty"`
}

// Store is the Mongo-backed durable outbox. Added records share the
// caller's session, so an event is persisted exactly when the write that
// produced it commits. Delivery belongs to the worker, never the request.
type Store struct {
	col *mongo.Collection
}

var _ appoutbox.Outbox = (*Store)(nil)

func NewStore(db *mongo.Database) *Store {
	col := db.Collection(outboxCollection)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "state", Value: 1}, {Key: "next_attempt_at", Value: 1}},
	})
	return &Store{col: col}
}

func (s *Store) Add(ctx context.Context, record appoutbox.EventRecord) error {
	now := time.Now().UTC()
	_, err := s.col.InsertOne(ctx, EventDocument{
		ID:          record.ID,
		Name:        record.Name,
		Payload:     record.Payload,
		OccurredAt:  record.OccurredAt,
		Aggregate:   record.Aggregate,
		Headers:     record.Headers,
		State:       stateNew,
		NextAttempt: now,
	})
	return err
}

// Flush is a no-op here; durability already happened in Add and the
// worker owns publishing.
func (s *Store) Flush(context.Context) error { return nil }

// Claim atomically takes the next due record for this worker.
// A nil document with nil error means the outbox is drained.
func (s *Store) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	now := time.Now().UTC()
	var doc EventDocument
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{
			"state":           bson.M{"$in": bson.A{stateNew, stateFailed}},
			"next_attempt_at": bson.M{"$lte": now},
		},
		bson.M{"$set": bson.M{"state": stateClaimed, "claimed_by": workerID, "claimed_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *Store) MarkSent(ctx context.Context, id string) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"state": stateSent, "sent_at": time.Now().UTC()},
	})
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id string, next time.Time, cause string) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"state": stateFailed, "next_attempt_at": next, "last_error": cause},
		"$inc": bson.M{"attempts": 1},
	})
	return err
}
