package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/api/metrics"
	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// OrderService implements the order use cases. Orders are created as whole
// snapshots; updates replace the item list or address wholesale.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrValidation
	}

	order := &domain.Order{
		OrderID:         uuid.NewString(),
		Total:           in.Total,
		Date:            in.Date,
		Items:           stampItemIDs(in.Items),
		ShippingAddress: in.ShippingAddress,
		CreatedBy:       in.CreatedBy,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().
		Str("order_id", created.OrderID).
		Str("created_by", created.CreatedBy).
		Int("items", len(created.Items)).
		Msg("order created")

	return created, nil
}

func (s *OrderService) List(ctx context.Context, in ports.ListOrdersInput) ([]domain.Order, error) {
	orders, err := s.repo.Find(ctx, in)
	if err != nil {
		return nil, err
	}
	if in.ProductName != "" {
		orders = narrowToMatchingItems(orders, in.ProductName)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) Update(ctx context.Context, in ports.UpdateOrderInput) (*domain.Order, error) {
	if in.ID == "" {
		return nil, domain.ErrValidation
	}
	if in.Items != nil {
		in.Items = stampItemIDs(in.Items)
	}
	return s.repo.Update(ctx, in)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}

// stampItemIDs assigns a generated productId to any item submitted without one.
func stampItemIDs(items []domain.OrderItem) []domain.OrderItem {
	stamped := make([]domain.OrderItem, len(items))
	for i, item := range items {
		if item.ProductID == "" {
			item.ProductID = uuid.NewString()
		}
		stamped[i] = item
	}
	return stamped
}

// narrowToMatchingItems keeps only the items whose name contains the search
// term and drops orders left with no items, so a search response shows
// exactly what was asked for.
func narrowToMatchingItems(orders []domain.Order, term string) []domain.Order {
	matched := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		kept := make([]domain.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			if containsFold(item.Name, term) {
				kept = append(kept, item)
			}
		}
		if len(kept) > 0 {
			order.Items = kept
			matched = append(matched, order)
		}
	}
	return matched
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
