package ports

import (
	"context"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// TierInput is a submitted delivery-tier surcharge. The tier's date is
// always computed server-side.
type TierInput struct {
	PriceCents int64
}

// AddCartItemInput feeds the aggregator. PriceCents and Quantity are
// pointers so a legitimate zero survives the required-field check.
type AddCartItemInput struct {
	Name       string
	PriceCents *int64
	Quantity   *int64
	Image      string
	OneDay     *TierInput
	ThreeDay   *TierInput
	SevenDay   *TierInput
	CreatedBy  string
}

// UpdateCartItemInput is a partial update of an existing line. Quantity here
// overwrites (owner correcting a line); only the aggregator increments.
type UpdateCartItemInput struct {
	ID       string
	Date     string
	Quantity *int64
	OneDay   *domain.DeliveryOption
	ThreeDay *domain.DeliveryOption
	SevenDay *domain.DeliveryOption
}

// CartUpsert is the single atomic write the aggregator issues: metadata is
// set unconditionally, quantity is incremented by QuantityDelta.
type CartUpsert struct {
	Name          string
	CreatedBy     string
	Date          string
	PriceCents    int64
	Image         string
	OneDay        domain.DeliveryOption
	ThreeDay      domain.DeliveryOption
	SevenDay      domain.DeliveryOption
	QuantityDelta int64
}

// CartRepository persists cart lines. Upsert must be atomic at the store
// level: find-by-(name, owner), increment on match, insert on no match, as
// one conditional write.
type CartRepository interface {
	Upsert(ctx context.Context, in CartUpsert) (*domain.CartLine, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.CartLine, error)
	FindByID(ctx context.Context, id string) (*domain.CartLine, error)
	Replace(ctx context.Context, line *domain.CartLine) (*domain.CartLine, error)
	Delete(ctx context.Context, id string) error
}

// CartService defines the cart use cases. AddOrIncrement is commutative and
// safe under concurrent duplicate submissions for the same (name, owner).
type CartService interface {
	AddOrIncrement(ctx context.Context, in AddCartItemInput) (*domain.CartLine, error)
	List(ctx context.Context, owner string) ([]domain.CartLine, error)
	Get(ctx context.Context, id string) (*domain.CartLine, error)
	Update(ctx context.Context, in UpdateCartItemInput) (*domain.CartLine, error)
	Delete(ctx context.Context, id string) error
}
