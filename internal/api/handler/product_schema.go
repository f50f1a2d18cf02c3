package handler

type createProductRequest struct {
	Name       string             `json:"name" validate:"required"`
	Image      string             `json:"image" validate:"required"`
	PriceCents *int64             `json:"priceCents" validate:"required"`
	Rating     map[string]float64 `json:"rating"`
}

type updateProductRequest struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Image      string             `json:"image"`
	PriceCents *int64             `json:"priceCents"`
	Rating     map[string]float64 `json:"rating"`
}
