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

// CreateOrder persists an order and its lines in one transaction.
func (s *SQLiteStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (id, user_id, total_price, order_date, state) VALUES (?, ?, ?, ?, ?)",
		order.ID, order.UserID, order.TotalPrice, order.OrderDate.Unix(), string(order.State),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertLines(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertLines(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.OrderID = order.ID

		_, err := tx.ExecContext(ctx,
			"INSERT INTO order_lines (id, order_id, product_type, product_color, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?, ?, ?)",
			line.ID, line.OrderID, line.ProductType, line.ProductColor, line.Quantity, line.UnitPrice, line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
	}
	return nil
}

// GetOrder retrieves an order by ID, including its lines.
// Returns (nil, nil) when the order does not exist.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	var orderDate int64
	var state string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, total_price, order_date, state FROM orders WHERE id = ?",
		id,
	).Scan(&order.ID, &order.UserID, &order.TotalPrice, &orderDate, &state)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.OrderDate = time.Unix(orderDate, 0)
	order.State = models.OrderState(state)

	lines, err := s.linesForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

func (s *SQLiteStore) linesForOrder(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, order_id, product_type, product_color, quantity, unit_price, subtotal FROM order_lines WHERE order_id = ?",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductType, &line.ProductColor, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}
	return lines, nil
}

// UpdateOrder replaces the order row and all of its lines in one
// transaction.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET user_id = ?, total_price = ?, order_date = ?, state = ? WHERE id = ?",
		order.UserID, order.TotalPrice, order.OrderDate.Unix(), string(order.State), order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order not found: %s", order.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_lines WHERE order_id = ?", order.ID); err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}
	if err := insertLines(ctx, tx, order); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteOrder removes an order; its lines go with it via the schema
// cascade.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order not found: %s", id)
	}
	return nil
}

// OrderExists reports whether an order row exists.
func (s *SQLiteStore) OrderExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM orders WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return true, nil
}

// ListOrders returns all orders with their lines, newest first.
func (s *SQLiteStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.queryOrders(ctx,
		"SELECT id, user_id, total_price, order_date, state FROM orders ORDER BY order_date DESC")
}

// ListOrdersInRange returns orders with order_date in [start, end).
func (s *SQLiteStore) ListOrdersInRange(ctx context.Context, start, end time.Time) ([]*models.Order, error) {
	return s.queryOrders(ctx,
		"SELECT id, user_id, total_price, order_date, state FROM orders WHERE order_date >= ? AND order_date < ? ORDER BY order_date DESC",
		start.Unix(), end.Unix())
}

func (s *SQLiteStore) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var orderDate int64
		var state string
		if err := rows.Scan(&order.ID, &order.UserID, &order.TotalPrice, &orderDate, &state); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.OrderDate = time.Unix(orderDate, 0)
		order.State = models.OrderState(state)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for _, order := range orders {
		lines, err := s.linesForOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Lines = lines
	}
	return orders, nil
}

// CountOrdersInRange counts orders with order_date in [start, end).
func (s *SQLiteStore) CountOrdersInRange(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE order_date >= ? AND order_date < ?",
		start.Unix(), end.Unix(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders in range: %w", err)
	}
	return count, nil
}

// CountOrdersByUser counts the orders owned by a user.
func (s *SQLiteStore) CountOrdersByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE user_id = ?", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders by user: %w", err)
	}
	return count, nil
}

// ListOrderViews joins orders with their owning user under the role
// scope, lines included.
func (s *SQLiteStore) ListOrderViews(ctx context.Context, scope storage.RoleScope) ([]*models.OrderView, error) {
	query := fmt.Sprintf(`
		SELECT o.id, o.user_id, o.total_price, o.order_date, o.state, u.display_name, u.role
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE %s
		ORDER BY o.order_date DESC`, roleClause(scope))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list order views: %w", err)
	}
	defer rows.Close()

	var views []*models.OrderView
	for rows.Next() {
		view := &models.OrderView{}
		var orderDate int64
		var state, role string
		if err := rows.Scan(&view.ID, &view.UserID, &view.TotalPrice, &orderDate, &state, &view.CustomerName, &role); err != nil {
			return nil, fmt.Errorf("failed to scan order view: %w", err)
		}
		view.OrderDate = time.Unix(orderDate, 0)
		view.State = models.OrderState(state)
		view.CustomerRole = models.Role(role)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order views: %w", err)
	}

	for _, view := range views {
		lines, err := s.linesForOrder(ctx, view.ID)
		if err != nil {
			return nil, err
		}
		view.Lines = lines
	}
	return views, nil
}
