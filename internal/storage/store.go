// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/ovofarm/backoffice/internal/models"
)

// RoleScope selects which users' bills/orders a join query returns.
type RoleScope int

const (
	// AllUsers applies no role filter.
	AllUsers RoleScope = iota
	// CustomersOnly keeps rows whose owning user has the customer role.
	CustomersOnly
	// CompanyOnly keeps rows whose owning user does NOT have the
	// customer role.
	CompanyOnly
)

// Store defines the interface for back-office storage operations.
// This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the service layer.
//
// Lookup methods return (nil, nil) when the row is absent; the service
// layer translates that into its typed not-found error. Aggregate
// methods return 0 on empty data, never an error for absence.
type Store interface {
	// Users.

	// CreateUser persists a new user. Returns a conflict error when the
	// email is already registered.
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	// DeleteUserCascade removes a user and everything hanging off it in
	// one transaction, child-to-parent: payments on the user's bills,
	// those bills, the user's order lines and orders, then the user.
	DeleteUserCascade(ctx context.Context, id string) error

	// Orders. An order owns its lines: they are written and removed
	// with it.

	// CreateOrder persists an order and its lines, assigning IDs.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	// UpdateOrder replaces the order row and all of its lines.
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	OrderExists(ctx context.Context, id string) (bool, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	// ListOrdersInRange returns orders with order_date in [start, end).
	ListOrdersInRange(ctx context.Context, start, end time.Time) ([]*models.Order, error)
	CountOrdersInRange(ctx context.Context, start, end time.Time) (int, error)
	CountOrdersByUser(ctx context.Context, userID string) (int, error)
	// ListOrderViews joins orders with their owning user, filtered by
	// role scope. Lines are loaded.
	ListOrderViews(ctx context.Context, scope RoleScope) ([]*models.OrderView, error)

	// Bills.

	CreateBill(ctx context.Context, bill *models.Bill) error
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	UpdateBill(ctx context.Context, bill *models.Bill) error
	// DeleteBill removes the bill and, in the same transaction, every
	// payment recorded against it.
	DeleteBill(ctx context.Context, id string) error
	// ListBillViews joins bills with their order and owning user,
	// filtered by role scope.
	ListBillViews(ctx context.Context, scope RoleScope) ([]*models.BillView, error)
	// ListBillViewsByUser returns the bill views whose order belongs to
	// the given user.
	ListBillViewsByUser(ctx context.Context, userID string) ([]*models.BillView, error)
	// SumBillTotalsInRange sums bill totals with issue_date in
	// [start, end) under the role scope. 0 when no rows match.
	SumBillTotalsInRange(ctx context.Context, scope RoleScope, start, end time.Time) (float64, error)
	CountBillsInRange(ctx context.Context, scope RoleScope, start, end time.Time) (int, error)

	// Payments.

	CreatePayment(ctx context.Context, pay *models.Payment) error
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, pay *models.Payment) error
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	// SumPayments returns the all-time income. 0 when there are none.
	SumPayments(ctx context.Context) (float64, error)
	// SumPaymentsInRange sums payments whose bill's issue_date falls in
	// [start, end). 0 when no rows match.
	SumPaymentsInRange(ctx context.Context, start, end time.Time) (float64, error)
	DeletePaymentsByBill(ctx context.Context, billID string) error

	// Close releases any resources held by the store.
	Close() error
}
