package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainfavorites "github.com/Grace-nduta/Airbnb-Platform/internal/domain/favorites"
	domainlistings "github.com/Grace-nduta/Airbnb-Platform/internal/domain/listings"
)

// FavoriteRepository stores one document per (guest, listing) pair. The
// unique compound index is what serializes concurrent toggles: at most one
// insert for a pair can win, the loser sees a duplicate key and resolves the
// toggle by deleting.
type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	col := db.Collection("favorites")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "guest_id", Value: 1}, {Key: "listing_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &FavoriteRepository{col: col}
}

func (r *FavoriteRepository) Toggle(ctx context.Context, guestID string, listingID domainlistings.ListingID, now time.Time) (bool, error) {
	if guestID == "" {
		return false, domainfavorites.ErrGuestRequired
	}
	filter := bson.M{"guest_id": guestID, "listing_id": string(listingID)}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	doc := favoriteDocument{
		GuestID:   guestID,
		ListingID: string(listingID),
		CreatedAt: now.UTC().UnixMilli(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent toggle inserted first; this call flips it
			// back off.
			_, delErr := r.col.DeleteOne(ctx, filter)
			if delErr != nil {
				return false, delErr
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *FavoriteRepository) IsFavorited(ctx context.Context, guestID string, listingID domainlistings.ListingID) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"guest_id": guestID, "listing_id": string(listingID)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteRepository) ListByGuest(ctx context.Context, guestID string) ([]domainfavorites.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"guest_id": guestID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domainfavorites.Favorite, 0)
	for cur.Next(ctx) {
		var doc favoriteDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domainfavorites.Favorite{
			GuestID:   doc.GuestID,
			ListingID: domainlistings.ListingID(doc.ListingID),
			CreatedAt: timestampToTime(doc.CreatedAt),
		})
	}
	return out, cur.Err()
}

func (r *FavoriteRepository) RemoveByListing(ctx context.Context, listingID domainlistings.ListingID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"listing_id": string(listingID)})
	return err
}

type favoriteDocument struct {
	GuestID   string `bson:"guest_id"`
	ListingID string `bson:"listing_id"`
	CreatedAt int64  `bson:"created_at"`
}

var _ domainfavorites.Repository = (*FavoriteRepository)(nil)
