package ports

import (
	"context"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// CreateProductInput carries a new catalog entry. PriceCents is a pointer so
// a free item (zero) passes the required-field check.
type CreateProductInput struct {
	Name       string
	Image      string
	PriceCents *int64
	Rating     map[string]float64
	CreatedBy  string
}

// UpdateProductInput is a partial update; nil/empty fields are left alone.
type UpdateProductInput struct {
	ID         string
	Name       string
	Image      string
	PriceCents *int64
	Rating     map[string]float64
}

// ProductRepository persists catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.Product, error)
	Replace(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, name string) ([]domain.Product, error)
	Update(ctx context.Context, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
