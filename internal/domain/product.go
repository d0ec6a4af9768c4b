package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product listed by a seller
type Product struct {
	ID          int64               `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Category    string              `json:"category" db:"category"`
	Price       decimal.Decimal     `json:"price" db:"price"`
	CarbonScore decimal.NullDecimal `json:"carbon_score" db:"carbon_score"`
	EcoLabel    string              `json:"eco_label" db:"eco_label"`
	Stock       int                 `json:"stock" db:"stock"`
	SellerID    int64               `json:"seller_id" db:"seller_id"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}

// ProductPricing is the slice of a product the order pipeline needs:
// the authoritative unit price and unit carbon cost at placement time.
type ProductPricing struct {
	ID          int64
	Price       decimal.Decimal
	CarbonScore decimal.NullDecimal
}
