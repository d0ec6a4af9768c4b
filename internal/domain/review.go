package domain

import (
	"database/sql"
	"time"
)

// Review is a customer review of a product, optionally answered by the
// product's seller or an admin.
type Review struct {
	ID         int64          `json:"id" db:"id"`
	CustomerID int64          `json:"customer_id" db:"customer_id"`
	ProductID  int64          `json:"product_id" db:"product_id"`
	Rating     int            `json:"rating" db:"rating"`
	Comment    string         `json:"comment" db:"comment"`
	Reply      sql.NullString `json:"-" db:"reply"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`

	// ProductName is populated by joined list queries.
	ProductName string `json:"product_name,omitempty" db:"product_name"`
}
