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

type stubOrderRepo struct {
	nextID int
	orders []*domain.Order
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = strconv.Itoa(r.nextID)
	r.orders = append(r.orders, &clone)
	out := clone
	return &out, nil
}

func (r *stubOrderRepo) Find(_ context.Context, in ports.ListOrdersInput) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if !in.All && o.CreatedBy != in.Owner {
			continue
		}
		if in.ProductName != "" {
			found := false
			for _, item := range o.Items {
				if containsFold(item.Name, in.ProductName) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) Update(_ context.Context, in ports.UpdateOrderInput) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.ID != in.ID {
			continue
		}
		if in.Items != nil {
			o.Items = in.Items
		}
		if in.ShippingAddress != nil {
			o.ShippingAddress = *in.ShippingAddress
		}
		clone := *o
		return &clone, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func orderInput(owner string, itemNames ...string) ports.CreateOrderInput {
	items := make([]domain.OrderItem, len(itemNames))
	for i, name := range itemNames {
		items[i] = domain.OrderItem{Name: name, Quantity: 1, Price: 10, Total: 10}
	}
	return ports.CreateOrderInput{
		Total:     float64(len(items)) * 10,
		Date:      "August 30, 2026",
		Items:     items,
		CreatedBy: owner,
	}
}

func TestOrderService_Create_StampsIDs(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), orderInput("walter", "mug", "shirt"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OrderID == "" {
		t.Fatalf("expected a generated order id")
	}
	for i, item := range created.Items {
		if item.ProductID == "" {
			t.Fatalf("item %d missing generated product id", i)
		}
	}
}

func TestOrderService_Create_KeepsExistingProductID(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, zerolog.Nop())

	in := orderInput("walter", "mug")
	in.Items[0].ProductID = "p-42"

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Items[0].ProductID != "p-42" {
		t.Fatalf("submitted product id must survive, got %q", created.Items[0].ProductID)
	}
}

func TestOrderService_Create_RequiresItems(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CreateOrderInput{CreatedBy: "walter"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOrderService_List_ScopedToOwner(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), orderInput("walter", "mug")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), orderInput("jesse", "shirt")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mine, err := svc.List(context.Background(), ports.ListOrdersInput{Owner: "walter"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].CreatedBy != "walter" {
		t.Fatalf("expected only walter's orders, got %+v", mine)
	}

	all, err := svc.List(context.Background(), ports.ListOrdersInput{All: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders with All, got %d", len(all))
	}
}

func TestOrderService_List_NarrowsItemsToSearchTerm(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), orderInput("walter", "Coffee Mug", "T-Shirt")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), orderInput("walter", "Poster")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := svc.List(context.Background(), ports.ListOrdersInput{Owner: "walter", ProductName: "mug"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 matching order, got %d", len(found))
	}
	// The non-matching item is dropped from the matched order.
	if len(found[0].Items) != 1 || found[0].Items[0].Name != "Coffee Mug" {
		t.Fatalf("expected only the matching item, got %+v", found[0].Items)
	}
}

func TestOrderService_Update_ReplacesItemsWholesale(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), orderInput("walter", "mug", "shirt"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), ports.UpdateOrderInput{
		ID:    created.ID,
		Items: []domain.OrderItem{{Name: "poster", Quantity: 1, Price: 5, Total: 5}},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Name != "poster" {
		t.Fatalf("items must be replaced wholesale, got %+v", updated.Items)
	}
	if updated.Items[0].ProductID == "" {
		t.Fatalf("replacement items get stamped ids too")
	}
}
