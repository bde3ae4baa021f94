package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"` // stock on hand, never touched by billing
	Brand     string          `json:"brand"`
	Supplier  string          `json:"supplier"`
	OldStock  int             `json:"old_stock"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateProductRequest doubles as the update payload (full replacement).
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"gte=0"`
	Brand    string          `json:"brand"`
	Supplier string          `json:"supplier"`
	OldStock int             `json:"old_stock" binding:"gte=0"`
	Category string          `json:"category"`
}

// ProductPricing is what the billing service needs from the catalog: the
// current price to snapshot and the name for rendering.
type ProductPricing struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
}
