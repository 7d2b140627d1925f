package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

const paymentsCollection = "payments"

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(paymentsCollection)}
}

type mongoPayment struct {
	TransactionID string    `bson:"transaction_id"`
	ParcelID      string    `bson:"parcel_id"`
	ParcelName    string    `bson:"parcel_name,omitempty"`
	Amount        float64   `bson:"amount"`
	Currency      string    `bson:"currency"`
	CustomerEmail string    `bson:"customer_email"`
	PaymentStatus string    `bson:"payment_status"`
	TrackingID    string    `bson:"tracking_id"`
	PaidAt        time.Time `bson:"paid_at"`
}

func (mp mongoPayment) toDomain() domain.Payment {
	return domain.Payment{
		TransactionID: mp.TransactionID,
		ParcelID:      mp.ParcelID,
		ParcelName:    mp.ParcelName,
		Amount:        mp.Amount,
		Currency:      mp.Currency,
		CustomerEmail: mp.CustomerEmail,
		PaymentStatus: mp.PaymentStatus,
		TrackingID:    mp.TrackingID,
		PaidAt:        mp.PaidAt.UTC(),
	}
}

// Create inserts a payment record. The unique index on transaction_id turns
// a concurrent duplicate into domain.ErrPaymentExists, which the reconciler
// converts into the already-processed response.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPayment{
		TransactionID: p.TransactionID,
		ParcelID:      p.ParcelID,
		ParcelName:    p.ParcelName,
		Amount:        p.Amount,
		Currency:      p.Currency,
		CustomerEmail: p.CustomerEmail,
		PaymentStatus: p.PaymentStatus,
		TrackingID:    p.TrackingID,
		PaidAt:        p.PaidAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrPaymentExists
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPayment
	if err := r.coll.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	p := mp.toDomain()
	return &p, nil
}

func (r *PaymentRepository) List(ctx context.Context, customerEmail string) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if customerEmail != "" {
		filter["customer_email"] = customerEmail
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoPayment
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(docs))
	for _, mp := range docs {
		payments = append(payments, mp.toDomain())
	}
	return payments, nil
}

// EnsureIndexes creates the unique transaction_id index (the idempotency
// anchor) and a lookup index on tracking_id.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "tracking_id", Value: 1}}},
		{Keys: bson.D{{Key: "customer_email", Value: 1}, {Key: "paid_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
