package validation

import (
	"testing"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
)

func TestCents(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1.0, 100},
		{2.50, 250},
		{0.1 + 0.2, 30}, // float noise must round away
		{3 * 1.1, 330},
		{-4.99, -499},
	}

	for _, tt := range tests {
		if got := Cents(tt.amount); got != tt.want {
			t.Errorf("Cents(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestLineSubtotal(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		if !LineSubtotal(3, 2.50, 7.50) {
			t.Error("Expected 3 x 2.50 = 7.50 to validate")
		}
	})

	t.Run("float noise tolerated", func(t *testing.T) {
		// 3 * 1.1 is not exactly 3.3 in binary floating point
		if !LineSubtotal(3, 1.1, 3.3) {
			t.Error("Expected 3 x 1.1 = 3.3 to validate via cents comparison")
		}
	})

	t.Run("off by one cent rejected", func(t *testing.T) {
		if LineSubtotal(3, 2.50, 7.51) {
			t.Error("Expected 3 x 2.50 != 7.51")
		}
	})
}

func TestOrderTotal(t *testing.T) {
	lines := []models.OrderLine{
		{Quantity: 2, UnitPrice: 1.25, Subtotal: 2.50},
		{Quantity: 1, UnitPrice: 3.40, Subtotal: 3.40},
	}

	if !OrderTotal(5.90, lines) {
		t.Error("Expected total 5.90 to match line subtotals")
	}
	if OrderTotal(5.91, lines) {
		t.Error("Expected total 5.91 to mismatch line subtotals")
	}
}

func TestDateNotFuture(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"past date", now.Add(-time.Hour), true},
		{"exactly now", now, true},
		{"future date", now.Add(time.Minute), false},
		{"zero date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateNotFuture(tt.date, now); got != tt.want {
				t.Errorf("DateNotFuture(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestKnownMethod(t *testing.T) {
	for _, m := range []models.PaymentMethod{models.MethodCash, models.MethodCard, models.MethodTransfer} {
		if !KnownMethod(m) {
			t.Errorf("Expected %s to be a known method", m)
		}
	}
	if KnownMethod(models.ParseMethod("bitcoin")) {
		t.Error("Expected BITCOIN to be rejected")
	}
	if KnownMethod("") {
		t.Error("Expected empty method to be rejected")
	}
}

func TestOrderStructValidation(t *testing.T) {
	v := New()

	base := func() OrderRequest {
		return OrderRequest{
			UserID: "u1",
			Lines: []OrderLineRequest{
				{ProductType: "chicken", ProductColor: "white", Quantity: 2, UnitPrice: 1.25, Subtotal: 2.50},
			},
			TotalPrice: 2.50,
			OrderDate:  time.Now().Add(-time.Hour),
			State:      "PENDING",
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := base()
		if err := v.Struct(&req); err != nil {
			t.Errorf("Expected valid request, got %v", err)
		}
	})

	t.Run("subtotal mismatch fails", func(t *testing.T) {
		req := base()
		req.Lines[0].Subtotal = 3.00
		req.TotalPrice = 3.00
		if err := v.Struct(&req); err == nil {
			t.Error("Expected subtotal mismatch to fail validation")
		}
	})

	t.Run("total mismatch fails", func(t *testing.T) {
		req := base()
		req.TotalPrice = 99.0
		if err := v.Struct(&req); err == nil {
			t.Error("Expected total mismatch to fail validation")
		}
	})

	t.Run("missing lines fails", func(t *testing.T) {
		req := base()
		req.Lines = nil
		if err := v.Struct(&req); err == nil {
			t.Error("Expected empty lines to fail validation")
		}
	})
}
