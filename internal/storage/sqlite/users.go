package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ovofarm/backoffice/internal/apperr"
	"github.com/ovofarm/backoffice/internal/models"
)

// CreateUser inserts a new user into the database. A duplicate email
// surfaces as a conflict error.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperr.Conflict("user", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const userSelect = `
	SELECT id, email, display_name, password_hash, role, created_at, updated_at
	FROM users
`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var role string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	return user, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, userSelect+"WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when
// absent.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx, userSelect+"WHERE email = ?", email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsers returns all users ordered by display name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+"ORDER BY display_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var role string
		if err := rows.Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = models.Role(role)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// DeleteUserCascade removes a user and everything hanging off it in one
// transaction, child-to-parent: payments touching the user's bills (or
// made by the user), those bills, the user's orders with their lines,
// then the user row itself. Running inside one transaction means a
// failure at any step leaves no orphans.
func (s *SQLiteStore) DeleteUserCascade(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const userBills = `SELECT b.id FROM bills b JOIN orders o ON o.id = b.order_id WHERE o.user_id = ?`

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM payments WHERE user_id = ? OR bill_id IN ("+userBills+")", id, id); err != nil {
		return fmt.Errorf("failed to delete user payments: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM bills WHERE id IN ("+userBills+")", id); err != nil {
		return fmt.Errorf("failed to delete user bills: %w", err)
	}
	// lines go with their orders via the schema cascade
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user orders: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
