package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zapshift/parcel-system/internal/core/domain"
	"github.com/zapshift/parcel-system/internal/core/ports"
)

const ridersCollection = "riders"

type RiderRepository struct {
	coll *mongo.Collection
}

func NewRiderRepository(db *mongo.Database) *RiderRepository {
	return &RiderRepository{coll: db.Collection(ridersCollection)}
}

type mongoRider struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Phone            string             `bson:"phone,omitempty"`
	District         string             `bson:"district,omitempty"`
	BikeRegistration string             `bson:"bike_registration,omitempty"`
	Status           string             `bson:"status"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (mr mongoRider) toDomain() *domain.Rider {
	return &domain.Rider{
		ID:               mr.ID.Hex(),
		Name:             mr.Name,
		Email:            mr.Email,
		Phone:            mr.Phone,
		District:         mr.District,
		BikeRegistration: mr.BikeRegistration,
		Status:           domain.RiderStatus(mr.Status),
		CreatedAt:        mr.CreatedAt.UTC(),
	}
}

func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) (*domain.Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRider{
		Name:             rider.Name,
		Email:            rider.Email,
		Phone:            rider.Phone,
		District:         rider.District,
		BikeRegistration: rider.BikeRegistration,
		Status:           string(rider.Status),
		CreatedAt:        rider.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert rider: %w", err)
	}

	created := *rider
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *RiderRepository) FindByID(ctx context.Context, id string) (*domain.Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRiderNotFound
	}

	var mr mongoRider
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRiderNotFound
		}
		return nil, fmt.Errorf("find rider: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *RiderRepository) List(ctx context.Context, status domain.RiderStatus) ([]domain.Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoRider
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode riders: %w", err)
	}

	riders := make([]domain.Rider, 0, len(docs))
	for _, mr := range docs {
		riders = append(riders, *mr.toDomain())
	}
	return riders, nil
}

func (r *RiderRepository) UpdateStatus(ctx context.Context, id string, status domain.RiderStatus) (ports.UpdateOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.UpdateOutcome{}, domain.ErrRiderNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return ports.UpdateOutcome{}, fmt.Errorf("update rider status: %w", err)
	}
	return ports.UpdateOutcome{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}
