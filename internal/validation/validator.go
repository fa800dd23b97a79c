package validation

import (
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level
// validation registered for order payloads.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// total_price must reconcile with the line subtotals, and each line
	// subtotal with quantity*unit_price, before a request reaches the
	// service layer.
	v.RegisterStructValidation(orderStructValidation, OrderRequest{})

	return v
}

// orderStructValidation verifies line subtotals and the order total in
// whole cents to sidestep float rounding.
func orderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(OrderRequest)

	var sum float64
	for i, l := range req.Lines {
		if Cents(float64(l.Quantity)*l.UnitPrice) != Cents(l.Subtotal) {
			sl.ReportError(l.Subtotal, fmt.Sprintf("lines[%d].subtotal", i), "Subtotal", "subtotal_match_line",
				fmt.Sprintf("%d x %.2f != %.2f", l.Quantity, l.UnitPrice, l.Subtotal))
		}
		sum += l.Subtotal
	}

	if Cents(sum) != Cents(req.TotalPrice) {
		sl.ReportError(req.TotalPrice, "total_price", "TotalPrice", "total_match_lines",
			fmt.Sprintf("lines sum %.2f != total %.2f", sum, req.TotalPrice))
	}
}
