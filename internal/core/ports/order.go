package ports

import (
	"context"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// CreateOrderInput carries a whole order snapshot. Items missing a ProductID
// get one assigned at creation.
type CreateOrderInput struct {
	Total           float64
	Date            string
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
	CreatedBy       string
}

// ListOrdersInput filters the order listing. All widens the scope to every
// user (admin dashboard); ProductName narrows both the order set and each
// order's item list to matching items.
type ListOrdersInput struct {
	Owner       string
	All         bool
	ProductName string
}

// UpdateOrderInput replaces sub-documents wholesale. A nil Items slice or
// nil ShippingAddress leaves the stored value untouched.
type UpdateOrderInput struct {
	ID              string
	Items           []domain.OrderItem
	ShippingAddress *domain.ShippingAddress
}

// OrderRepository persists order snapshots.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Find(ctx context.Context, in ListOrdersInput) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, in UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderService defines the order use cases.
type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	List(ctx context.Context, in ListOrdersInput) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, in UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
