package models

import "time"

// Bill represents an invoice issued against an order. A bill references
// its order but does not own it: deleting the order leaves the bill.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// OrderID references the billed order. By business convention one
	// bill is issued per order; this is not a schema-level constraint.
	OrderID string `json:"order_id"`

	// IssueDate is when the bill was issued. Must not be in the future.
	IssueDate time.Time `json:"issue_date"`

	// TotalPrice mirrors the order total at issuance. Non-negative.
	TotalPrice float64 `json:"total_price"`

	// Paid marks whether the bill has been settled.
	Paid bool `json:"paid"`
}

// BillView is a Bill joined with its order's customer name, date and
// state. Computed at read time, never stored.
type BillView struct {
	Bill
	CustomerID   string     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	CustomerRole Role       `json:"customer_role"`
	OrderDate    time.Time  `json:"order_date"`
	OrderState   OrderState `json:"order_state"`
}
