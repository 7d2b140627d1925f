package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

const parcelsCollection = "parcels"

type ParcelRepository struct {
	coll *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{coll: db.Collection(parcelsCollection)}
}

type mongoParcel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	SenderEmail   string             `bson:"sender_email"`
	Cost          float64            `bson:"cost"`
	PaymentStatus string             `bson:"payment_status"`
	TrackingID    string             `bson:"tracking_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (mp mongoParcel) toDomain() *domain.Parcel {
	return &domain.Parcel{
		ID:            mp.ID.Hex(),
		Title:         mp.Title,
		SenderEmail:   mp.SenderEmail,
		Cost:          mp.Cost,
		PaymentStatus: domain.PaymentState(mp.PaymentStatus),
		TrackingID:    mp.TrackingID,
		CreatedAt:     mp.CreatedAt.UTC(),
	}
}

func (r *ParcelRepository) Create(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoParcel{
		Title:         p.Title,
		SenderEmail:   p.SenderEmail,
		Cost:          p.Cost,
		PaymentStatus: string(p.PaymentStatus),
		TrackingID:    p.TrackingID,
		CreatedAt:     p.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert parcel: %w", err)
	}

	created := *p
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ParcelRepository) FindByID(ctx context.Context, id string) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrParcelNotFound
	}

	var mp mongoParcel
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, fmt.Errorf("find parcel: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ParcelRepository) List(ctx context.Context, senderEmail string) ([]domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if senderEmail != "" {
		filter["sender_email"] = senderEmail
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoParcel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}

	parcels := make([]domain.Parcel, 0, len(docs))
	for _, mp := range docs {
		parcels = append(parcels, *mp.toDomain())
	}
	return parcels, nil
}

func (r *ParcelRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrParcelNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete parcel: %w", err)
	}
	return res.DeletedCount, nil
}

// MarkPaid atomically sets payment_status=paid and the tracking id on one
// parcel document. Rewriting the same values on a reconciliation retry is a
// matched-but-unmodified update, which the outcome exposes.
func (r *ParcelRepository) MarkPaid(ctx context.Context, id, trackingID string) (ports.UpdateOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.UpdateOutcome{}, domain.ErrParcelNotFound
	}

	update := bson.M{"$set": bson.M{
		"payment_status": string(domain.ParcelPaid),
		"tracking_id":    trackingID,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return ports.UpdateOutcome{}, fmt.Errorf("mark parcel paid: %w", err)
	}
	return ports.UpdateOutcome{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}
