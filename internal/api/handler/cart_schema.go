package handler

import "github.com/marketbay/storefront-api/internal/core/domain"

type deliveryTierRequest struct {
	PriceCents int64 `json:"priceCents"`
}

// addCartItemRequest feeds the aggregator. PriceCents and Quantity are
// pointers so a submitted zero still satisfies the required check.
type addCartItemRequest struct {
	Name       string               `json:"name" validate:"required"`
	PriceCents *int64               `json:"priceCents" validate:"required"`
	Quantity   *int64               `json:"quantity" validate:"required"`
	Image      string               `json:"image"`
	OneDay     *deliveryTierRequest `json:"oneDay"`
	ThreeDay   *deliveryTierRequest `json:"threeDay"`
	SevenDay   *deliveryTierRequest `json:"sevenDay"`
}

type updateCartItemRequest struct {
	ID       string                 `json:"id"`
	Date     string                 `json:"date"`
	Quantity *int64                 `json:"quantity"`
	OneDay   *domain.DeliveryOption `json:"oneDay"`
	ThreeDay *domain.DeliveryOption `json:"threeDay"`
	SevenDay *domain.DeliveryOption `json:"sevenDay"`
}

type deleteByIDRequest struct {
	ID string `json:"id" validate:"required"`
}
