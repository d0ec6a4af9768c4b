package domain

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "Pending"
	OrderStatusApproved OrderStatus = "Approved"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	return s == OrderStatusPending || s == OrderStatusApproved
}

// Order represents an order header with denormalized totals
type Order struct {
	ID          int64           `json:"id" db:"id"`
	CustomerID  int64           `json:"customer_id" db:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	TotalCarbon decimal.Decimal `json:"total_carbon" db:"total_carbon"`
	Status      OrderStatus     `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// OrderItem is one line of an order. Price is the unit price captured at
// placement time, independent of later product price changes.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// OrderLine is an order line enriched with resolved pricing, ready to be
// totalled and persisted.
type OrderLine struct {
	ProductID   int64
	Quantity    int
	Price       decimal.Decimal
	CarbonScore decimal.Decimal
}

// OrderItemRow is one row of the orders/order_items/products join the view
// queries produce. Order-level fields repeat on every row of an order; the
// item fields are null when the order was left-joined and has no items.
// Totals and price are carried as the NUMERIC's text form so the view layer
// owns the float coercion.
type OrderItemRow struct {
	OrderID     int64
	CustomerID  int64
	TotalAmount string
	TotalCarbon string
	Status      string
	CreatedAt   time.Time
	ItemID      sql.NullInt64
	ProductID   sql.NullInt64
	ProductName sql.NullString
	Quantity    sql.NullInt64
	Price       sql.NullString
}
