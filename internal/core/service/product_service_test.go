package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

type stubProductRepo struct {
	nextID   int
	products []*domain.Product
	findAlls int
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = strconv.Itoa(r.nextID)
	r.products = append(r.products, &clone)
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	r.findAlls++
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) SearchByName(_ context.Context, name string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if containsFold(p.Name, name) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Replace(_ context.Context, updated *domain.Product) (*domain.Product, error) {
	for i, p := range r.products {
		if p.ID == updated.ID {
			clone := *updated
			r.products[i] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// stubCatalogCache is an in-memory stand-in for the Redis listing cache.
type stubCatalogCache struct {
	products    []domain.Product
	populated   bool
	invalidated int
}

func (c *stubCatalogCache) GetProducts(context.Context) ([]domain.Product, bool) {
	if !c.populated {
		return nil, false
	}
	return c.products, true
}

func (c *stubCatalogCache) SetProducts(_ context.Context, products []domain.Product) {
	c.products = products
	c.populated = true
}

func (c *stubCatalogCache) Invalidate(context.Context) {
	c.products = nil
	c.populated = false
	c.invalidated++
}

func createInput(name string) ports.CreateProductInput {
	price := int64(1999)
	return ports.CreateProductInput{
		Name:       name,
		Image:      "img.png",
		PriceCents: &price,
		CreatedBy:  "walter",
	}
}

func TestProductService_Create_AppliesDefaultRating(t *testing.T) {
	svc := NewProductService(&stubProductRepo{}, &stubCatalogCache{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), createInput("mug"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Rating["star"] != 4.5 || created.Rating["count"] != 120 {
		t.Fatalf("expected default rating, got %v", created.Rating)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc := NewProductService(&stubProductRepo{}, &stubCatalogCache{}, zerolog.Nop())

	price := int64(1)
	cases := []ports.CreateProductInput{
		{Image: "img.png", PriceCents: &price},
		{Name: "mug", PriceCents: &price},
		{Name: "mug", Image: "img.png"},
	}
	for i, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestProductService_List_ReadsThroughCache(t *testing.T) {
	repo := &stubProductRepo{}
	cache := &stubCatalogCache{}
	svc := NewProductService(repo, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), createInput("mug")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// First listing misses the cache and populates it.
	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first) != 1 || repo.findAlls != 1 {
		t.Fatalf("expected one store read, got %d", repo.findAlls)
	}

	// Second listing is served from the cache.
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second) != 1 || repo.findAlls != 1 {
		t.Fatalf("expected cache hit, store reads: %d", repo.findAlls)
	}
}

func TestProductService_WritesInvalidateCache(t *testing.T) {
	repo := &stubProductRepo{}
	cache := &stubCatalogCache{}
	svc := NewProductService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), createInput("mug"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !cache.populated {
		t.Fatalf("listing should populate the cache")
	}

	if _, err := svc.Update(context.Background(), ports.UpdateProductInput{ID: created.ID, Name: "big mug"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if cache.populated {
		t.Fatalf("update must invalidate the cache")
	}

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.populated {
		t.Fatalf("delete must invalidate the cache")
	}
}

func TestProductService_Search(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, &stubCatalogCache{}, zerolog.Nop())

	for _, name := range []string{"Coffee Mug", "Travel Mug", "Poster"} {
		if _, err := svc.Create(context.Background(), createInput(name)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	found, err := svc.Search(context.Background(), "mug")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	if _, err := svc.Search(context.Background(), ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty term, got %v", err)
	}
}

func TestProductService_Update_PartialFields(t *testing.T) {
	repo := &stubProductRepo{}
	svc := NewProductService(repo, &stubCatalogCache{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), createInput("mug"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPrice := int64(2999)
	updated, err := svc.Update(context.Background(), ports.UpdateProductInput{
		ID:         created.ID,
		PriceCents: &newPrice,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PriceCents != 2999 {
		t.Fatalf("price not updated: %d", updated.PriceCents)
	}
	if updated.Name != "mug" || updated.Image != "img.png" {
		t.Fatalf("untouched fields must survive: %+v", updated)
	}
}
