package domain

// OrderItem is one product line inside an order. ProductID is assigned at
// creation time when the submission does not carry one.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	Image        string  `json:"image,omitempty"`
	Name         string  `json:"name"`
	Quantity     int64   `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	DeliveryDate string  `json:"deliveryDate,omitempty"`
}

// ShippingAddress is the delivery destination snapshot stored on an order.
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Country  string `json:"country"`
	City     string `json:"city"`
	SubCity  string `json:"subCity,omitempty"`
	HouseNo  string `json:"houseNo,omitempty"`
	Phone    string `json:"phone"`
}

// Order is an immutable-ish snapshot created as a whole document. Updates
// replace the item list or address wholesale, never merge partial items.
type Order struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"orderId"`
	Total           float64         `json:"Total"`
	Date            string          `json:"date"`
	Items           []OrderItem     `json:"product"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedBy       string          `json:"createdBy"`
}
