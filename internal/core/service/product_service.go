package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/api/metrics"
	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// CatalogCache abstracts the read-through cache in front of the product
// listing (Redis).
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, bool)
	SetProducts(ctx context.Context, products []domain.Product)
	Invalidate(ctx context.Context)
}

// ProductService implements the catalog use cases. Listing goes through the
// cache; every write invalidates it.
type ProductService struct {
	repo  ports.ProductRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache CatalogCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log}
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Image == "" || in.PriceCents == nil {
		return nil, domain.ErrValidation
	}

	rating := in.Rating
	if rating == nil {
		rating = domain.DefaultRating()
	}

	created, err := s.repo.Create(ctx, &domain.Product{
		Name:       in.Name,
		Image:      in.Image,
		PriceCents: *in.PriceCents,
		Rating:     rating,
		CreatedBy:  in.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.log.Info().Str("name", created.Name).Str("created_by", created.CreatedBy).Msg("product created")
	return created, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.cache.GetProducts(ctx); ok {
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetProducts(ctx, products)
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, name string) ([]domain.Product, error) {
	if name == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.SearchByName(ctx, name)
}

func (s *ProductService) Update(ctx context.Context, in ports.UpdateProductInput) (*domain.Product, error) {
	if in.ID == "" {
		return nil, domain.ErrValidation
	}

	product, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Image != "" {
		product.Image = in.Image
	}
	if in.PriceCents != nil {
		product.PriceCents = *in.PriceCents
	}
	if in.Rating != nil {
		product.Rating = in.Rating
	}

	updated, err := s.repo.Replace(ctx, product)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
