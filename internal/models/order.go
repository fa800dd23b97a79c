package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderState is the lifecycle tag of an order. The set is open: unknown
// non-empty tags are accepted and normalized to upper case, so rows
// written by older tooling keep loading. New orders should use the
// canonical constants.
type OrderState string

const (
	StatePending   OrderState = "PENDING"
	StateShipped   OrderState = "SHIPPED"
	StateCompleted OrderState = "COMPLETED"
	StateCancelled OrderState = "CANCELLED"
)

// KnownStates lists the canonical state tags in display order.
// Chart bucketing uses this fixed set.
var KnownStates = []OrderState{StatePending, StateShipped, StateCompleted, StateCancelled}

// ParseState normalizes a state tag to upper case.
func ParseState(s string) OrderState {
	return OrderState(strings.ToUpper(strings.TrimSpace(s)))
}

// IsCancelled reports whether the tag marks a cancelled order,
// case-insensitively.
func (s OrderState) IsCancelled() bool {
	return strings.EqualFold(string(s), string(StateCancelled))
}

// Order represents a customer's purchase request.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// UserID references the owning user.
	UserID string `json:"user_id"`

	// Lines are the purchased products. An order owns its lines:
	// they are stored and deleted with it.
	Lines []OrderLine `json:"lines"`

	// TotalPrice is the order total. Invariant: equals the sum of the
	// line subtotals (compared in whole cents).
	TotalPrice float64 `json:"total_price"`

	// OrderDate is when the order was placed. Must not be in the
	// future at creation time.
	OrderDate time.Time `json:"order_date"`

	// State is the lifecycle tag.
	State OrderState `json:"state"`
}

// OrderLine is one purchased product within an order.
type OrderLine struct {
	// ID is the unique identifier for the line (UUID format).
	ID string `json:"id"`

	// OrderID references the owning order.
	OrderID string `json:"order_id"`

	// ProductType and ProductColor identify the egg variety.
	ProductType  string `json:"product_type"`
	ProductColor string `json:"product_color"`

	// Quantity is the number of units (positive).
	Quantity int `json:"quantity"`

	// UnitPrice is the price per unit (non-negative).
	UnitPrice float64 `json:"unit_price"`

	// Subtotal is the line total. Invariant: equals Quantity*UnitPrice
	// in whole cents.
	Subtotal float64 `json:"subtotal"`
}

// ProductLabel is the "type - color" label used by product statistics.
func (l OrderLine) ProductLabel() string {
	return fmt.Sprintf("%s - %s", l.ProductType, l.ProductColor)
}

// OrderView is an Order joined with its owning user for reporting.
type OrderView struct {
	Order
	CustomerName string `json:"customer_name"`
	CustomerRole Role   `json:"customer_role"`
}
