package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecobazaarx/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create persists the order header and all line items in one
	// transaction. Either everything commits or nothing does.
	Create(ctx context.Context, order *domain.Order, lines []domain.OrderLine) (int64, error)
	// AllRows left-joins items and product names onto every order, newest
	// order first. Orders without items produce rows with null item fields.
	AllRows(ctx context.Context) ([]domain.OrderItemRow, error)
	// CustomerRows inner-joins, so itemless orders are omitted.
	CustomerRows(ctx context.Context, customerID int64) ([]domain.OrderItemRow, error)
	// SellerRows inner-joins and keeps only rows for the seller's products.
	SellerRows(ctx context.Context, sellerID int64) ([]domain.OrderItemRow, error)
	// UpdateStatusForSeller transitions an order's status only when the
	// order contains at least one of the seller's products.
	UpdateStatusForSeller(ctx context.Context, orderID, sellerID int64, status domain.OrderStatus) error
	// Approve sets the status to Approved. Re-approving succeeds.
	Approve(ctx context.Context, orderID int64) error
	Count(ctx context.Context) (int, error)
	CountDistinctBySeller(ctx context.Context, sellerID int64) (int, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order header and its line items atomically
func (r *orderRepository) Create(ctx context.Context, order *domain.Order, lines []domain.OrderLine) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, total_amount, total_carbon, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		order.CustomerID,
		order.TotalAmount,
		order.TotalCarbon,
		order.Status,
		order.CreatedAt,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`,
			orderID,
			line.ProductID,
			line.Quantity,
			line.Price,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}

	return orderID, nil
}

// Joined row queries. Totals and the snapshot price are selected as text so
// the view layer owns the numeric coercion.

const orderRowColumns = `
	o.id,
	o.customer_id,
	o.total_amount::text,
	o.total_carbon::text,
	o.status,
	o.created_at,
	oi.id,
	oi.product_id,
	p.name,
	oi.quantity,
	oi.price::text`

// AllRows returns the left-joined row set for the admin view
func (r *orderRepository) AllRows(ctx context.Context) ([]domain.OrderItemRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN products p ON oi.product_id = p.id
		ORDER BY o.id DESC, oi.id
	`, orderRowColumns)

	return r.queryRows(ctx, query)
}

// CustomerRows returns the inner-joined row set for a customer's own orders
func (r *orderRepository) CustomerRows(ctx context.Context, customerID int64) ([]domain.OrderItemRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE o.customer_id = $1
		ORDER BY o.id DESC, oi.id
	`, orderRowColumns)

	return r.queryRows(ctx, query, customerID)
}

// SellerRows returns the inner-joined row set restricted to a seller's products
func (r *orderRepository) SellerRows(ctx context.Context, sellerID int64) ([]domain.OrderItemRow, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE p.seller_id = $1
		ORDER BY o.id DESC, oi.id
	`, orderRowColumns)

	return r.queryRows(ctx, query, sellerID)
}

func (r *orderRepository) queryRows(ctx context.Context, query string, args ...interface{}) ([]domain.OrderItemRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order rows: %w", err)
	}
	defer rows.Close()

	result := []domain.OrderItemRow{}
	for rows.Next() {
		var row domain.OrderItemRow
		err := rows.Scan(
			&row.OrderID,
			&row.CustomerID,
			&row.TotalAmount,
			&row.TotalCarbon,
			&row.Status,
			&row.CreatedAt,
			&row.ItemID,
			&row.ProductID,
			&row.ProductName,
			&row.Quantity,
			&row.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	return result, nil
}

// UpdateStatusForSeller transitions status with an ownership check
func (r *orderRepository) UpdateStatusForSeller(ctx context.Context, orderID, sellerID int64, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		  AND EXISTS (
			SELECT 1
			FROM order_items oi
			JOIN products p ON oi.product_id = p.id
			WHERE oi.order_id = orders.id AND p.seller_id = $3
		  )
	`

	result, err := r.db.ExecContext(ctx, query, status, orderID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return checkAffected(result, ErrOrderNotFound)
}

// Approve marks an order Approved
func (r *orderRepository) Approve(ctx context.Context, orderID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = 'Approved' WHERE id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to approve order: %w", err)
	}

	return checkAffected(result, ErrOrderNotFound)
}

// Count returns the total number of orders
func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// CountDistinctBySeller counts orders containing at least one of a seller's products
func (r *orderRepository) CountDistinctBySeller(ctx context.Context, sellerID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE p.seller_id = $1
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count seller orders: %w", err)
	}
	return count, nil
}
