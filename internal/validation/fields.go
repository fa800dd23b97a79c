// Package validation holds the field-level checks for orders, bills and
// payments. The pure predicates in this file gate persistence in the
// service layer; the validator.v10 request types in types.go guard the
// HTTP boundary.
package validation

import (
	"math"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
)

// Cents converts a currency amount to whole cents. All money equality
// checks compare cents, never raw floats.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// UserRef reports whether a user reference is present.
func UserRef(id string) bool {
	return id != ""
}

// HasLines reports whether an order carries at least one line.
func HasLines(lines []models.OrderLine) bool {
	return len(lines) > 0
}

// PositiveQuantity reports whether a line quantity is valid.
func PositiveQuantity(q int) bool {
	return q > 0
}

// UnitPrice reports whether a unit price is valid (non-negative).
func UnitPrice(v float64) bool {
	return v >= 0
}

// LineSubtotal reports whether subtotal == quantity * unitPrice,
// compared in whole cents.
func LineSubtotal(quantity int, unitPrice, subtotal float64) bool {
	return Cents(float64(quantity)*unitPrice) == Cents(subtotal)
}

// OrderTotal reports whether total equals the sum of the line
// subtotals, compared in whole cents.
func OrderTotal(total float64, lines []models.OrderLine) bool {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return Cents(sum) == Cents(total)
}

// PositiveTotal reports whether a total price is strictly positive.
func PositiveTotal(v float64) bool {
	return v > 0
}

// NonNegativeTotal reports whether a total price is zero or positive.
func NonNegativeTotal(v float64) bool {
	return v >= 0
}

// DateNotFuture reports whether t is set and not after now.
func DateNotFuture(t, now time.Time) bool {
	return !t.IsZero() && !t.After(now)
}

// StateTag reports whether an order state tag is non-empty.
func StateTag(s models.OrderState) bool {
	return s != ""
}

// PositiveAmount reports whether a paid amount is strictly positive.
func PositiveAmount(v float64) bool {
	return v > 0
}

// KnownMethod reports whether the payment method belongs to the closed
// CASH/CARD/TRANSFER set.
func KnownMethod(m models.PaymentMethod) bool {
	return m.Valid()
}
