package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/storage/sqlite"
)

// testNow is the frozen clock used by every month-window test.
var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func frozenClock() time.Time { return testNow }

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "backoffice-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store *sqlite.SQLiteStore, email, name string, role models.Role) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "x", role)
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

func validOrder(userID string, total float64, date time.Time) *models.Order {
	return &models.Order{
		UserID: userID,
		Lines: []models.OrderLine{
			{ProductType: "chicken", ProductColor: "white", Quantity: 1, UnitPrice: total, Subtotal: total},
		},
		TotalPrice: total,
		OrderDate:  date,
		State:      models.StatePending,
	}
}

func seedOrder(t *testing.T, svc *OrderService, userID string, total float64, date time.Time) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), validOrder(userID, total, date))
	if err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}

func seedBill(t *testing.T, svc *BillingService, orderID string, total float64, issue time.Time, paid bool) *models.Bill {
	t.Helper()
	bill, err := svc.IssueBill(context.Background(), &models.Bill{
		OrderID:    orderID,
		IssueDate:  issue,
		TotalPrice: total,
		Paid:       paid,
	})
	if err != nil {
		t.Fatalf("Failed to seed bill: %v", err)
	}
	return bill
}
