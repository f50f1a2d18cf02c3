package handler

type orderItemRequest struct {
	ProductID    string  `json:"productId"`
	Image        string  `json:"image"`
	Name         string  `json:"name" validate:"required"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	DeliveryDate string  `json:"deliveryDate"`
}

type shippingAddressRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Country  string `json:"country" validate:"required"`
	City     string `json:"city" validate:"required"`
	SubCity  string `json:"subCity"`
	HouseNo  string `json:"houseNo"`
	Phone    string `json:"phone" validate:"required"`
}

// createOrderRequest mirrors the storefront checkout payload; "Total" keeps
// its capitalised wire name.
type createOrderRequest struct {
	Total           float64                 `json:"Total"`
	Date            string                  `json:"date"`
	Product         []orderItemRequest      `json:"product" validate:"required,min=1,dive"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress" validate:"required"`
}

type updateOrderRequest struct {
	ID              string                  `json:"id"`
	Product         []orderItemRequest      `json:"product"`
	ShippingAddress *shippingAddressRequest `json:"shippingAddress"`
}
