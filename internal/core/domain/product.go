package domain

// Product is a catalog entry. Rating keeps the loose star/count shape the
// storefront renders directly.
type Product struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Image      string             `json:"image"`
	PriceCents int64              `json:"priceCents"`
	Rating     map[string]float64 `json:"rating,omitempty"`
	CreatedBy  string             `json:"createdBy,omitempty"`
}

// DefaultRating is applied to newly created products that ship without one.
func DefaultRating() map[string]float64 {
	return map[string]float64{"star": 4.5, "count": 120}
}
