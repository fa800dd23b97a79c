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

// PaymentService records payments against bills and exposes the income
// aggregates.
type PaymentService struct {
	store storage.Store
	now   func() time.Time
}

// NewPaymentService creates a PaymentService with the given storage
// backend.
func NewPaymentService(store storage.Store) *PaymentService {
	return &PaymentService{store: store, now: time.Now}
}

// validatePayment runs the field validations in their fixed order:
// user, bill, amount paid, payment method.
func (s *PaymentService) validatePayment(ctx context.Context, pay *models.Payment) error {
	if !validation.UserRef(pay.UserID) {
		return apperr.Invalid("user", "payment must reference a user")
	}
	user, err := s.store.GetUser(ctx, pay.UserID)
	if err != nil {
		return fmt.Errorf("lookup paying user: %w", err)
	}
	if user == nil {
		return apperr.Invalid("user", "referenced user does not exist")
	}

	if pay.BillID == "" {
		return apperr.Invalid("bill", "payment must reference a bill")
	}
	bill, err := s.store.GetBill(ctx, pay.BillID)
	if err != nil {
		return fmt.Errorf("lookup paid bill: %w", err)
	}
	if bill == nil {
		return apperr.Invalid("bill", "referenced bill does not exist")
	}

	if !validation.PositiveAmount(pay.AmountPaid) {
		return apperr.Invalid("amount paid", "must be greater than zero")
	}

	pay.Method = models.ParseMethod(string(pay.Method))
	if !validation.KnownMethod(pay.Method) {
		return apperr.Invalid("payment method", "must be one of CASH, CARD, TRANSFER")
	}

	return nil
}

// RecordPayment validates and persists a new payment. The first failing
// validation rejects the whole payment.
func (s *PaymentService) RecordPayment(ctx context.Context, pay *models.Payment) (*models.Payment, error) {
	if err := s.validatePayment(ctx, pay); err != nil {
		return nil, err
	}

	if err := s.store.CreatePayment(ctx, pay); err != nil {
		slog.Error("RecordPayment failed", "bill_id", pay.BillID, "error", err)
		return nil, err
	}

	slog.Info("Payment recorded", "payment_id", pay.ID, "bill_id", pay.BillID, "amount", pay.AmountPaid)
	return pay, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	pay, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, apperr.NotFound("payment", id)
	}
	return pay, nil
}

// UpdatePayment replaces all fields of an existing payment after
// re-validating them.
func (s *PaymentService) UpdatePayment(ctx context.Context, id string, patch *models.Payment) (*models.Payment, error) {
	existing, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.UserID = patch.UserID
	existing.BillID = patch.BillID
	existing.AmountPaid = patch.AmountPaid
	existing.Method = patch.Method

	if err := s.validatePayment(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.store.UpdatePayment(ctx, existing); err != nil {
		slog.Error("UpdatePayment failed", "payment_id", id, "error", err)
		return nil, err
	}

	slog.Info("Payment updated", "payment_id", id)
	return existing, nil
}

// DeletePayment removes a payment by ID.
func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	if _, err := s.GetPayment(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeletePayment(ctx, id); err != nil {
		slog.Error("DeletePayment failed", "payment_id", id, "error", err)
		return err
	}

	slog.Info("Payment deleted", "payment_id", id)
	return nil
}

// TotalIncome returns the all-time sum of recorded payments. 0 when
// there are none.
func (s *PaymentService) TotalIncome(ctx context.Context) (float64, error) {
	return s.store.SumPayments(ctx)
}

// TotalIncomeCurrentMonth sums the payments whose bill was issued this
// month. 0 when there are none.
func (s *PaymentService) TotalIncomeCurrentMonth(ctx context.Context) (float64, error) {
	start, end := monthRange(s.now())
	return s.store.SumPaymentsInRange(ctx, start, end)
}
