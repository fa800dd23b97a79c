package validation

import "time"

// OrderLineRequest is a single line within an order payload.
type OrderLineRequest struct {
	ProductType  string  `json:"product_type" validate:"required"`
	ProductColor string  `json:"product_color" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
	Subtotal     float64 `json:"subtotal" validate:"gte=0"`
}

// OrderRequest is the payload for POST /orders and PUT /orders/:id.
type OrderRequest struct {
	UserID     string             `json:"user_id" validate:"required"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"total_price" validate:"required,gt=0"`
	OrderDate  time.Time          `json:"order_date" validate:"required"`
	State      string             `json:"state" validate:"required"`
}

// BillRequest is the payload for POST /bills and PUT /bills/:id.
type BillRequest struct {
	OrderID    string    `json:"order_id" validate:"required"`
	IssueDate  time.Time `json:"issue_date" validate:"required"`
	TotalPrice float64   `json:"total_price" validate:"gte=0"`
	Paid       bool      `json:"paid"`
}

// PaymentRequest is the payload for POST /payments and PUT /payments/:id.
type PaymentRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	BillID     string  `json:"bill_id" validate:"required"`
	AmountPaid float64 `json:"amount_paid" validate:"required,gt=0"`
	Method     string  `json:"method" validate:"required"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
