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

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

const cartCollection = "cart_items"

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartCollection)}
}

type mongoDeliveryOption struct {
	Date       string `bson:"date"`
	PriceCents int64  `bson:"priceCents"`
}

type mongoCartLine struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Name       string              `bson:"name"`
	Date       string              `bson:"date"`
	PriceCents int64               `bson:"priceCents"`
	Quantity   int64               `bson:"quantity"`
	Image      string              `bson:"image,omitempty"`
	OneDay     mongoDeliveryOption `bson:"oneDay"`
	ThreeDay   mongoDeliveryOption `bson:"threeDay"`
	SevenDay   mongoDeliveryOption `bson:"sevenDay"`
	CreatedBy  *string             `bson:"createdBy"`
}

func (ml *mongoCartLine) toDomain() *domain.CartLine {
	line := &domain.CartLine{
		ID:         ml.ID.Hex(),
		Name:       ml.Name,
		Date:       ml.Date,
		PriceCents: ml.PriceCents,
		Quantity:   ml.Quantity,
		Image:      ml.Image,
		OneDay:     domain.DeliveryOption(ml.OneDay),
		ThreeDay:   domain.DeliveryOption(ml.ThreeDay),
		SevenDay:   domain.DeliveryOption(ml.SevenDay),
	}
	if ml.CreatedBy != nil {
		line.CreatedBy = *ml.CreatedBy
	}
	return line
}

// ownerValue maps an empty owner to an explicit null so every guest
// submission collapses onto the same line.
func ownerValue(owner string) *string {
	if owner == "" {
		return nil
	}
	return &owner
}

// Upsert is the aggregation write: one FindOneAndUpdate keyed on
// (name, createdBy) that increments quantity on match and inserts on miss.
// The store applies it atomically, so concurrent duplicate submissions all
// land as increments on a single line.
func (r *CartRepository) Upsert(ctx context.Context, in ports.CartUpsert) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"name":      in.Name,
		"createdBy": ownerValue(in.CreatedBy),
	}

	update := bson.M{
		"$set": bson.M{
			"date":       in.Date,
			"priceCents": in.PriceCents,
			"image":      in.Image,
			"oneDay":     mongoDeliveryOption(in.OneDay),
			"threeDay":   mongoDeliveryOption(in.ThreeDay),
			"sevenDay":   mongoDeliveryOption(in.SevenDay),
		},
		"$inc": bson.M{"quantity": in.QuantityDelta},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ml mongoCartLine
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ml); err != nil {
		return nil, fmt.Errorf("upsert cart line: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *CartRepository) ListByOwner(ctx context.Context, owner string) ([]domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"createdBy": ownerValue(owner)})
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer cur.Close(ctx)

	var lines []domain.CartLine
	for cur.Next(ctx) {
		var ml mongoCartLine
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode cart line: %w", err)
		}
		lines = append(lines, *ml.toDomain())
	}
	return lines, cur.Err()
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCartLineNotFound
	}

	var ml mongoCartLine
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartLineNotFound
		}
		return nil, fmt.Errorf("find cart line: %w", err)
	}
	return ml.toDomain(), nil
}

// Replace rewrites an existing line wholesale. The aggregation key fields
// stay as stored; only the mutable fields are written.
func (r *CartRepository) Replace(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(line.ID)
	if err != nil {
		return nil, domain.ErrCartLineNotFound
	}

	update := bson.M{"$set": bson.M{
		"date":       line.Date,
		"priceCents": line.PriceCents,
		"quantity":   line.Quantity,
		"image":      line.Image,
		"oneDay":     mongoDeliveryOption(line.OneDay),
		"threeDay":   mongoDeliveryOption(line.ThreeDay),
		"sevenDay":   mongoDeliveryOption(line.SevenDay),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ml mongoCartLine
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartLineNotFound
		}
		return nil, fmt.Errorf("replace cart line: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCartLineNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

// EnsureIndexes creates the compound aggregation-key index. It stays
// non-unique: correctness comes from the conditional upsert, the index just
// keeps the lookup cheap.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "createdBy", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
