package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrderItem struct {
	ProductID    string  `bson:"productId"`
	Image        string  `bson:"image,omitempty"`
	Name         string  `bson:"name"`
	Quantity     int64   `bson:"quantity"`
	Price        float64 `bson:"price"`
	Total        float64 `bson:"total"`
	DeliveryDate string  `bson:"deliveryDate,omitempty"`
}

type mongoShippingAddress struct {
	FullName string `bson:"fullName"`
	Country  string `bson:"country"`
	City     string `bson:"city"`
	SubCity  string `bson:"subCity,omitempty"`
	HouseNo  string `bson:"houseNo,omitempty"`
	Phone    string `bson:"phone"`
}

type mongoOrder struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	OrderID         string               `bson:"orderId"`
	Total           float64              `bson:"total"`
	Date            string               `bson:"date"`
	Items           []mongoOrderItem     `bson:"product"`
	ShippingAddress mongoShippingAddress `bson:"shippingAddress"`
	CreatedBy       string               `bson:"createdBy"`
}

func (mo *mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, len(mo.Items))
	for i, it := range mo.Items {
		items[i] = domain.OrderItem(it)
	}
	return &domain.Order{
		ID:              mo.ID.Hex(),
		OrderID:         mo.OrderID,
		Total:           mo.Total,
		Date:            mo.Date,
		Items:           items,
		ShippingAddress: domain.ShippingAddress(mo.ShippingAddress),
		CreatedBy:       mo.CreatedBy,
	}
}

func toMongoItems(items []domain.OrderItem) []mongoOrderItem {
	out := make([]mongoOrderItem, len(items))
	for i, it := range items {
		out[i] = mongoOrderItem(it)
	}
	return out
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		OrderID:         o.OrderID,
		Total:           o.Total,
		Date:            o.Date,
		Items:           toMongoItems(o.Items),
		ShippingAddress: mongoShippingAddress(o.ShippingAddress),
		CreatedBy:       o.CreatedBy,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

// Find filters by owner unless All is set, and by item product name when
// ProductName is non-empty. Item-level narrowing happens in the service; the
// repository only selects whole orders.
func (r *OrderRepository) Find(ctx context.Context, in ports.ListOrdersInput) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !in.All {
		filter["createdBy"] = in.Owner
	}
	if in.ProductName != "" {
		filter["product.name"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(in.ProductName),
			Options: "i",
		}
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	for cur.Next(ctx) {
		var mo mongoOrder
		if err := cur.Decode(&mo); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, *mo.toDomain())
	}
	return orders, cur.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

// Update replaces sub-documents wholesale. Nil fields stay untouched.
func (r *OrderRepository) Update(ctx context.Context, in ports.UpdateOrderInput) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	set := bson.M{}
	if in.Items != nil {
		set["product"] = toMongoItems(in.Items)
	}
	if in.ShippingAddress != nil {
		set["shippingAddress"] = mongoShippingAddress(*in.ShippingAddress)
	}
	if len(set) == 0 {
		return r.FindByID(ctx, in.ID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mo mongoOrder
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// EnsureIndexes creates the owner and public order id indexes.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
		{Keys: bson.D{{Key: "orderId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
