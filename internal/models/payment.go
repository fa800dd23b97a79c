package models

import "strings"

// PaymentMethod identifies how a payment was made. Closed set.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// ParseMethod normalizes a method tag to upper case. The result may
// still be outside the closed set; use Valid to check membership.
func ParseMethod(s string) PaymentMethod {
	return PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether the method belongs to the closed set.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer:
		return true
	}
	return false
}

// Payment represents a recorded payment applied to a bill. A payment
// references its bill but does not own it; payments are bulk-deleted
// when their bill is deleted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// UserID references the paying user.
	UserID string `json:"user_id"`

	// BillID references the target bill.
	BillID string `json:"bill_id"`

	// AmountPaid is the paid amount (strictly positive).
	AmountPaid float64 `json:"amount_paid"`

	// Method is the payment method tag.
	Method PaymentMethod `json:"method"`
}
