package domain

// DeliveryOption is one delivery tier: the projected arrival date (display
// string) and its surcharge.
type DeliveryOption struct {
	Date       string `json:"date" bson:"date"`
	PriceCents int64  `json:"priceCents" bson:"priceCents"`
}

// CartLine is the single aggregated cart record per (Name, CreatedBy) pair.
// Quantity only ever grows through the aggregator; metadata fields hold the
// values from the most recent submission. CreatedBy is empty for a guest.
type CartLine struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Date       string         `json:"date"`
	PriceCents int64          `json:"priceCents"`
	Quantity   int64          `json:"quantity"`
	Image      string         `json:"image"`
	OneDay     DeliveryOption `json:"oneDay"`
	ThreeDay   DeliveryOption `json:"threeDay"`
	SevenDay   DeliveryOption `json:"sevenDay"`
	CreatedBy  string         `json:"createdBy,omitempty"`
}
