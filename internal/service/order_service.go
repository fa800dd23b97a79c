// Package service implements the back-office business logic on top of
// the storage abstraction: order lifecycle, billing, payment recording,
// statistics and user management.
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

// OrderService owns the order lifecycle: creation, update, deletion and
// the month/count queries.
type OrderService struct {
	store storage.Store
	now   func() time.Time
}

// NewOrderService creates an OrderService with the given storage
// backend.
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

// validateOrder runs the field validations in their fixed order: user,
// lines, total price, order date, state. The first failure wins, so an
// order failing several checks always reports the same field.
func (s *OrderService) validateOrder(ctx context.Context, order *models.Order) error {
	if !validation.UserRef(order.UserID) {
		return apperr.Invalid("user", "order must reference a user")
	}
	user, err := s.store.GetUser(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("lookup order user: %w", err)
	}
	if user == nil {
		return apperr.Invalid("user", "referenced user does not exist")
	}

	if !validation.HasLines(order.Lines) {
		return apperr.Invalid("order lines", "order must have at least one line")
	}
	for i, line := range order.Lines {
		if !validation.PositiveQuantity(line.Quantity) {
			return apperr.Invalid("order lines", fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if !validation.UnitPrice(line.UnitPrice) {
			return apperr.Invalid("order lines", fmt.Sprintf("line %d: unit price must not be negative", i+1))
		}
		if !validation.LineSubtotal(line.Quantity, line.UnitPrice, line.Subtotal) {
			return apperr.Invalid("order lines", fmt.Sprintf("line %d: subtotal does not equal quantity x unit price", i+1))
		}
	}

	if !validation.PositiveTotal(order.TotalPrice) {
		return apperr.Invalid("total price", "must be greater than zero")
	}
	if !validation.OrderTotal(order.TotalPrice, order.Lines) {
		return apperr.Invalid("total price", "does not equal the sum of line subtotals")
	}

	if !validation.DateNotFuture(order.OrderDate, s.now()) {
		return apperr.Invalid("order date", "must be set and not in the future")
	}

	if !validation.StateTag(order.State) {
		return apperr.Invalid("state", "must not be empty")
	}
	order.State = models.ParseState(string(order.State))

	return nil
}

// CreateOrder validates and persists a new order with its lines. The
// whole creation is rejected on the first failing validation; nothing
// is written unless every check passes.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := s.validateOrder(ctx, order); err != nil {
		return nil, err
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		slog.Error("CreateOrder failed", "user_id", order.UserID, "error", err)
		return nil, err
	}

	slog.Info("Order created", "order_id", order.ID, "user_id", order.UserID, "total", order.TotalPrice)
	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order", id)
	}
	return order, nil
}

// UpdateOrder loads the existing order, applies the new field values,
// re-validates and persists.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch *models.Order) (*models.Order, error) {
	existing, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.UserID = patch.UserID
	existing.Lines = patch.Lines
	existing.TotalPrice = patch.TotalPrice
	existing.OrderDate = patch.OrderDate
	existing.State = patch.State

	if err := s.validateOrder(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.store.UpdateOrder(ctx, existing); err != nil {
		slog.Error("UpdateOrder failed", "order_id", id, "error", err)
		return nil, err
	}

	slog.Info("Order updated", "order_id", id, "state", existing.State)
	return existing, nil
}

// DeleteOrder removes an order and its lines.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	exists, err := s.store.OrderExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("order", id)
	}

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		slog.Error("DeleteOrder failed", "order_id", id, "error", err)
		return err
	}

	slog.Info("Order deleted", "order_id", id)
	return nil
}

// ListOrders returns all orders, freshly queried each call.
func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.store.ListOrders(ctx)
}

// OrdersInCurrentMonth returns the orders placed since the first day of
// the current month.
func (s *OrderService) OrdersInCurrentMonth(ctx context.Context) ([]*models.Order, error) {
	start, end := monthRange(s.now())
	return s.store.ListOrdersInRange(ctx, start, end)
}

// CountOrdersInCurrentMonth counts the orders placed this month.
// Returns 0, never an error, when there are none.
func (s *OrderService) CountOrdersInCurrentMonth(ctx context.Context) (int, error) {
	start, end := monthRange(s.now())
	return s.store.CountOrdersInRange(ctx, start, end)
}

// CountOrdersByCustomer counts the orders owned by the given user.
func (s *OrderService) CountOrdersByCustomer(ctx context.Context, userID string) (int, error) {
	return s.store.CountOrdersByUser(ctx, userID)
}
