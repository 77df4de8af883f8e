package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "github.com/Grace-nduta/Airbnb-Platform/internal/domain/availability"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
	domainrange "github.com/Grace-nduta/Airbnb-Platform/internal/domain/shared/daterange"
)

const reserveAttempts = 3

// CalendarRepository keeps one document per listing. Reserve is made atomic
// with a versioned compare-and-swap: the overlap check runs against the
// loaded document and the write only lands if nobody advanced the version
// in between. A lost race retries with the fresh document.
type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection("agg_calendar")}
}

func (r *CalendarRepository) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	doc, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CalendarRepository) Reserve(ctx context.Context, id domainlistings.ListingID, dr domainrange.DateRange, reference string, now time.Time) error {
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		doc, err := r.load(ctx, id)
		if err != nil {
			return err
		}
		cal := doc.toAggregate()
		if err := cal.Reserve(dr, reference, now); err != nil {
			return err
		}
		swapped, err := r.swap(ctx, doc, cal)
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}
	}
	return ErrConcurrentUpdate
}

func (r *CalendarRepository) Release(ctx context.Context, id domainlistings.ListingID, reference string, now time.Time) error {
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		doc, err := r.load(ctx, id)
		if err != nil {
			return err
		}
		cal := doc.toAggregate()
		if err := cal.Release(reference, now); err != nil {
			return err
		}
		swapped, err := r.swap(ctx, doc, cal)
		if err != nil {
			return err
		}
		if swapped {
			return nil
		}
	}
	return ErrConcurrentUpdate
}

func (r *CalendarRepository) load(ctx context.Context, id domainlistings.ListingID) (calendarDocument, error) {
	var doc calendarDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return calendarDocument{ID: string(id)}, nil
	}
	if err != nil {
		return calendarDocument{}, err
	}
	return doc, nil
}

func (r *CalendarRepository) swap(ctx context.Context, prev calendarDocument, cal *domainavailability.Calendar) (bool, error) {
	doc := newCalendarDocument(cal)
	doc.Version = prev.Version + 1
	filter := bson.M{"_id": prev.ID, "version": prev.Version}
	opts := options.Update().SetUpsert(prev.Version == 0)
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.MatchedCount > 0 || res.UpsertedCount > 0, nil
}

type calendarDocument struct {
	ID      string          `bson:"_id"`
	Blocks  []blockDocument `bson:"blocks"`
	Version int64           `bson:"version"`
}

type blockDocument struct {
	Range     rangeDocument `bson:"range"`
	Reference string        `bson:"reference"`
	CreatedAt int64         `bson:"created_at"`
}

func newCalendarDocument(cal *domainavailability.Calendar) calendarDocument {
	blocks := make([]blockDocument, 0, len(cal.Blocks))
	for _, b := range cal.Blocks {
		blocks = append(blocks, blockDocument{
			Range:     rangeDocument{CheckIn: b.Range.CheckIn.UnixMilli(), CheckOut: b.Range.CheckOut.UnixMilli()},
			Reference: b.Reference,
			CreatedAt: b.CreatedAt.UnixMilli(),
		})
	}
	return calendarDocument{ID: string(cal.ListingID), Blocks: blocks, Version: cal.Version}
}

func (d calendarDocument) toAggregate() *domainavailability.Calendar {
	cal := domainavailability.NewCalendar(domainlistings.ListingID(d.ID))
	cal.Version = d.Version
	for _, b := range d.Blocks {
		cal.Blocks = append(cal.Blocks, domainavailability.Block{
			Range:     domainrange.DateRange{CheckIn: timestampToTime(b.Range.CheckIn), CheckOut: timestampToTime(b.Range.CheckOut)},
			Reference: b.Reference,
			CreatedAt: timestampToTime(b.CreatedAt),
		})
	}
	return cal
}

var _ domainavailability.Repository = (*CalendarRepository)(nil)
