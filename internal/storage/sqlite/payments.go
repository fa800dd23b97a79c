package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ovofarm/backoffice/internal/models"
)

// CreatePayment persists a new payment, assigning an ID if unset.
func (s *SQLiteStore) CreatePayment(ctx context.Context, pay *models.Payment) error {
	if pay.ID == "" {
		pay.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (id, user_id, bill_id, amount_paid, method) VALUES (?, ?, ?, ?, ?)",
		pay.ID, pay.UserID, pay.BillID, pay.AmountPaid, string(pay.Method),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	pay := &models.Payment{}
	var method string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, bill_id, amount_paid, method FROM payments WHERE id = ?",
		id,
	).Scan(&pay.ID, &pay.UserID, &pay.BillID, &pay.AmountPaid, &method)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	pay.Method = models.PaymentMethod(method)
	return pay, nil
}

// UpdatePayment replaces all fields of an existing payment.
func (s *SQLiteStore) UpdatePayment(ctx context.Context, pay *models.Payment) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET user_id = ?, bill_id = ?, amount_paid = ?, method = ? WHERE id = ?",
		pay.UserID, pay.BillID, pay.AmountPaid, string(pay.Method), pay.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("payment not found: %s", pay.ID)
	}
	return nil
}

// DeletePayment removes a payment by ID.
func (s *SQLiteStore) DeletePayment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("payment not found: %s", id)
	}
	return nil
}

// ListPayments returns all payments.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, bill_id, amount_paid, method FROM payments")
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		pay := &models.Payment{}
		var method string
		if err := rows.Scan(&pay.ID, &pay.UserID, &pay.BillID, &pay.AmountPaid, &method); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		pay.Method = models.PaymentMethod(method)
		payments = append(payments, pay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// SumPayments returns the all-time income. COALESCE keeps the empty
// aggregate at 0.
func (s *SQLiteStore) SumPayments(ctx context.Context) (float64, error) {
	var sum float64
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount_paid), 0) FROM payments",
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return sum, nil
}

// SumPaymentsInRange sums payments whose bill's issue_date falls in
// [start, end). The payment row carries no date of its own, so the
// bill's issue date drives the filter.
func (s *SQLiteStore) SumPaymentsInRange(ctx context.Context, start, end time.Time) (float64, error) {
	var sum float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(p.amount_paid), 0)
		 FROM payments p
		 JOIN bills b ON b.id = p.bill_id
		 WHERE b.issue_date >= ? AND b.issue_date < ?`,
		start.Unix(), end.Unix(),
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum payments in range: %w", err)
	}
	return sum, nil
}

// DeletePaymentsByBill removes every payment recorded against a bill.
func (s *SQLiteStore) DeletePaymentsByBill(ctx context.Context, billID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE bill_id = ?", billID); err != nil {
		return fmt.Errorf("failed to delete payments by bill: %w", err)
	}
	return nil
}
