package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/api/metrics"
	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// deliveryDateLayout is the display format delivery dates are stored in.
const deliveryDateLayout = "January 2, 2006"

// CartService aggregates cart submissions. All duplicate-submission safety
// lives in the repository's atomic upsert; the service only prepares the
// metadata that is set unconditionally alongside the quantity increment.
type CartService struct {
	repo ports.CartRepository
	log  zerolog.Logger
}

func NewCartService(repo ports.CartRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

// AddOrIncrement collapses duplicate submissions for the same (name, owner)
// pair into a single accumulating line. N concurrent calls with quantity
// delta 1 converge to one line with quantity N: the store applies the
// conditional insert-or-increment as one atomic write, so no read-modify-
// write race can drop an increment.
func (s *CartService) AddOrIncrement(ctx context.Context, in ports.AddCartItemInput) (*domain.CartLine, error) {
	if in.Name == "" || in.PriceCents == nil || in.Quantity == nil {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	oneDay := domain.DeliveryOption{
		Date:       now.AddDate(0, 0, 1).Format(deliveryDateLayout),
		PriceCents: tierPrice(in.OneDay),
	}
	threeDay := domain.DeliveryOption{
		Date:       now.AddDate(0, 0, 3).Format(deliveryDateLayout),
		PriceCents: tierPrice(in.ThreeDay),
	}
	sevenDay := domain.DeliveryOption{
		Date:       now.AddDate(0, 0, 7).Format(deliveryDateLayout),
		PriceCents: tierPrice(in.SevenDay),
	}

	line, err := s.repo.Upsert(ctx, ports.CartUpsert{
		Name:      in.Name,
		CreatedBy: in.CreatedBy,
		// The longest tier's date doubles as the line's display date.
		Date:          sevenDay.Date,
		PriceCents:    *in.PriceCents,
		Image:         in.Image,
		OneDay:        oneDay,
		ThreeDay:      threeDay,
		SevenDay:      sevenDay,
		QuantityDelta: *in.Quantity,
	})
	if err != nil {
		metrics.CartUpsertsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("name", in.Name).Str("owner", in.CreatedBy).Msg("cart upsert failed")
		return nil, fmt.Errorf("cart upsert: %w", err)
	}

	metrics.CartUpsertsTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("name", line.Name).
		Str("owner", line.CreatedBy).
		Int64("quantity", line.Quantity).
		Msg("cart line upserted")

	return line, nil
}

func (s *CartService) List(ctx context.Context, owner string) ([]domain.CartLine, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *CartService) Get(ctx context.Context, id string) (*domain.CartLine, error) {
	if id == "" {
		return nil, domain.ErrValidation
	}
	return s.repo.FindByID(ctx, id)
}

// Update overwrites individual fields of an existing line. Unlike the
// aggregator, the quantity here is a correction, not an increment.
func (s *CartService) Update(ctx context.Context, in ports.UpdateCartItemInput) (*domain.CartLine, error) {
	if in.ID == "" {
		return nil, domain.ErrValidation
	}

	line, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		line.Date = in.Date
	}
	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if in.OneDay != nil {
		line.OneDay = *in.OneDay
	}
	if in.ThreeDay != nil {
		line.ThreeDay = *in.ThreeDay
	}
	if in.SevenDay != nil {
		line.SevenDay = *in.SevenDay
	}

	return s.repo.Replace(ctx, line)
}

func (s *CartService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}

func tierPrice(t *ports.TierInput) int64 {
	if t == nil {
		return 0
	}
	return t.PriceCents
}
