package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ovofarm/backoffice/internal/apperr"
	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/storage"
	"github.com/ovofarm/backoffice/internal/validation"
)

// NoPurchasesThisMonth is returned by BestCustomerOfMonth when no
// customer bill was issued in the current month.
const NoPurchasesThisMonth = "no purchases this month"

// BillingService derives bills from orders and owns their lifecycle,
// plus the bill-level monthly aggregates.
type BillingService struct {
	store storage.Store
	now   func() time.Time
}

// NewBillingService creates a BillingService with the given storage
// backend.
func NewBillingService(store storage.Store) *BillingService {
	return &BillingService{store: store, now: time.Now}
}

// validateBill runs the field validations in their fixed order: order
// reference, issue date, total price.
func (s *BillingService) validateBill(ctx context.Context, bill *models.Bill) error {
	if bill.OrderID == "" {
		return apperr.Invalid("order", "bill must reference an order")
	}
	exists, err := s.store.OrderExists(ctx, bill.OrderID)
	if err != nil {
		return fmt.Errorf("lookup billed order: %w", err)
	}
	if !exists {
		return apperr.Invalid("order", "referenced order does not exist")
	}

	if !validation.DateNotFuture(bill.IssueDate, s.now()) {
		return apperr.Invalid("issue date", "must be set and not in the future")
	}

	if !validation.NonNegativeTotal(bill.TotalPrice) {
		return apperr.Invalid("total price", "must not be negative")
	}

	return nil
}

// IssueBill validates and persists a new bill against an order.
func (s *BillingService) IssueBill(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	if err := s.validateBill(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("IssueBill failed", "order_id", bill.OrderID, "error", err)
		return nil, err
	}

	slog.Info("Bill issued", "bill_id", bill.ID, "order_id", bill.OrderID, "total", bill.TotalPrice)
	return bill, nil
}

// GetBill retrieves a bill by ID.
func (s *BillingService) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperr.NotFound("bill", id)
	}
	return bill, nil
}

// UpdateBill loads the existing bill, applies the new field values
// (paid toggle, corrected totals), re-validates and persists.
func (s *BillingService) UpdateBill(ctx context.Context, id string, patch *models.Bill) (*models.Bill, error) {
	existing, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.OrderID = patch.OrderID
	existing.IssueDate = patch.IssueDate
	existing.TotalPrice = patch.TotalPrice
	existing.Paid = patch.Paid

	if err := s.validateBill(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBill(ctx, existing); err != nil {
		slog.Error("UpdateBill failed", "bill_id", id, "error", err)
		return nil, err
	}

	slog.Info("Bill updated", "bill_id", id, "paid", existing.Paid)
	return existing, nil
}

// DeleteBill removes a bill and everything paid against it.
func (s *BillingService) DeleteBill(ctx context.Context, id string) error {
	if _, err := s.GetBill(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeleteBill(ctx, id); err != nil {
		slog.Error("DeleteBill failed", "bill_id", id, "error", err)
		return err
	}

	slog.Info("Bill deleted", "bill_id", id)
	return nil
}

// ListBills returns every bill joined with its customer name, order
// date and order state.
func (s *BillingService) ListBills(ctx context.Context) ([]*models.BillView, error) {
	return s.store.ListBillViews(ctx, storage.AllUsers)
}

// BillsForCustomer returns the bill views whose order belongs to the
// given user.
func (s *BillingService) BillsForCustomer(ctx context.Context, userID string) ([]*models.BillView, error) {
	return s.store.ListBillViewsByUser(ctx, userID)
}

// CustomerBills returns the bill views owned by customer-role users.
func (s *BillingService) CustomerBills(ctx context.Context) ([]*models.BillView, error) {
	return s.store.ListBillViews(ctx, storage.CustomersOnly)
}

// CompanyBills returns the bill views owned by non-customer users.
func (s *BillingService) CompanyBills(ctx context.Context) ([]*models.BillView, error) {
	return s.store.ListBillViews(ctx, storage.CompanyOnly)
}

// MonthlySalesTotal sums the totals of customer bills issued in the
// current month. 0 when there are none.
func (s *BillingService) MonthlySalesTotal(ctx context.Context) (float64, error) {
	start, end := monthRange(s.now())
	return s.store.SumBillTotalsInRange(ctx, storage.CustomersOnly, start, end)
}

// BestCustomerOfMonth returns the display name of the customer with the
// highest summed bill totals this month, ties broken lexicographically.
// Returns the NoPurchasesThisMonth sentinel when the month is empty.
func (s *BillingService) BestCustomerOfMonth(ctx context.Context) (string, error) {
	views, err := s.store.ListBillViews(ctx, storage.CustomersOnly)
	if err != nil {
		return "", err
	}

	start, end := monthRange(s.now())
	spend := make(map[string]float64)
	for _, v := range views {
		if v.IssueDate.Before(start) || !v.IssueDate.Before(end) {
			continue
		}
		spend[v.CustomerName] += v.TotalPrice
	}
	if len(spend) == 0 {
		return NoPurchasesThisMonth, nil
	}

	best := ""
	bestSpend := 0.0
	for name, total := range spend {
		if best == "" || total > bestSpend || (total == bestSpend && name < best) {
			best = name
			bestSpend = total
		}
	}
	return best, nil
}

// CountCustomerBillsInCurrentMonth counts the customer bills issued
// this month. 0, never an error, when there are none.
func (s *BillingService) CountCustomerBillsInCurrentMonth(ctx context.Context) (int, error) {
	start, end := monthRange(s.now())
	return s.store.CountBillsInRange(ctx, storage.CustomersOnly, start, end)
}
