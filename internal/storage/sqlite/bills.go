package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/storage"
)

// CreateBill persists a new bill, assigning an ID if unset.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (id, order_id, issue_date, total_price, paid) VALUES (?, ?, ?, ?, ?)",
		bill.ID, bill.OrderID, bill.IssueDate.Unix(), bill.TotalPrice, boolToInt(bill.Paid),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill := &models.Bill{}
	var issueDate int64
	var paid int

	err := s.db.QueryRowContext(ctx,
		"SELECT id, order_id, issue_date, total_price, paid FROM bills WHERE id = ?",
		id,
	).Scan(&bill.ID, &bill.OrderID, &issueDate, &bill.TotalPrice, &paid)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	bill.IssueDate = time.Unix(issueDate, 0)
	bill.Paid = paid != 0
	return bill, nil
}

// UpdateBill updates an existing bill row.
func (s *SQLiteStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET order_id = ?, issue_date = ?, total_price = ?, paid = ? WHERE id = ?",
		bill.OrderID, bill.IssueDate.Unix(), bill.TotalPrice, boolToInt(bill.Paid), bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bill not found: %s", bill.ID)
	}
	return nil
}

// DeleteBill removes a bill and every payment recorded against it in
// one transaction.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE bill_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete bill payments: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("bill not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const billViewSelect = `
	SELECT b.id, b.order_id, b.issue_date, b.total_price, b.paid,
	       u.id, u.display_name, u.role, o.order_date, o.state
	FROM bills b
	JOIN orders o ON o.id = b.order_id
	JOIN users u ON u.id = o.user_id`

// ListBillViews joins bills with their order and owning user under the
// role scope, newest first.
func (s *SQLiteStore) ListBillViews(ctx context.Context, scope storage.RoleScope) ([]*models.BillView, error) {
	query := fmt.Sprintf("%s WHERE %s ORDER BY b.issue_date DESC", billViewSelect, roleClause(scope))
	return s.queryBillViews(ctx, query)
}

// ListBillViewsByUser returns the bill views whose order belongs to the
// given user.
func (s *SQLiteStore) ListBillViewsByUser(ctx context.Context, userID string) ([]*models.BillView, error) {
	query := billViewSelect + " WHERE u.id = ? ORDER BY b.issue_date DESC"
	return s.queryBillViews(ctx, query, userID)
}

func (s *SQLiteStore) queryBillViews(ctx context.Context, query string, args ...interface{}) ([]*models.BillView, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill views: %w", err)
	}
	defer rows.Close()

	var views []*models.BillView
	for rows.Next() {
		view := &models.BillView{}
		var issueDate, orderDate int64
		var paid int
		var role, state string
		if err := rows.Scan(&view.ID, &view.OrderID, &issueDate, &view.TotalPrice, &paid,
			&view.CustomerID, &view.CustomerName, &role, &orderDate, &state); err != nil {
			return nil, fmt.Errorf("failed to scan bill view: %w", err)
		}
		view.IssueDate = time.Unix(issueDate, 0)
		view.Paid = paid != 0
		view.CustomerRole = models.Role(role)
		view.OrderDate = time.Unix(orderDate, 0)
		view.OrderState = models.OrderState(state)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill views: %w", err)
	}
	return views, nil
}

// SumBillTotalsInRange sums bill totals with issue_date in [start, end)
// under the role scope. COALESCE keeps the empty aggregate at 0.
func (s *SQLiteStore) SumBillTotalsInRange(ctx context.Context, scope storage.RoleScope, start, end time.Time) (float64, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(b.total_price), 0)
		FROM bills b
		JOIN orders o ON o.id = b.order_id
		JOIN users u ON u.id = o.user_id
		WHERE %s AND b.issue_date >= ? AND b.issue_date < ?`, roleClause(scope))

	var sum float64
	if err := s.db.QueryRowContext(ctx, query, start.Unix(), end.Unix()).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum bill totals: %w", err)
	}
	return sum, nil
}

// CountBillsInRange counts bills with issue_date in [start, end) under
// the role scope.
func (s *SQLiteStore) CountBillsInRange(ctx context.Context, scope storage.RoleScope, start, end time.Time) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM bills b
		JOIN orders o ON o.id = b.order_id
		JOIN users u ON u.id = o.user_id
		WHERE %s AND b.issue_date >= ? AND b.issue_date < ?`, roleClause(scope))

	var count int
	if err := s.db.QueryRowContext(ctx, query, start.Unix(), end.Unix()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bills in range: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
