package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the aggregate root: the header row plus its owned items, always
// written as one unit. TotalAmount is derived from the items and must equal
// the sum of their unit_price * quantity whenever the bill is readable.
type Bill struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []BillItem      `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BillItem holds the price snapshot taken when the item was billed. Later
// catalog price changes never touch it.
type BillItem struct {
	ID        int64           `json:"id"`
	BillID    int64           `json:"-"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateBillItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateBillRequest doubles as the update payload: an update replaces the
// whole item set, there are no partial item edits.
type CreateBillRequest struct {
	CustomerID int64                   `json:"customer_id" binding:"required"`
	Items      []CreateBillItemRequest `json:"items" binding:"required,dive"`
}

// BillItemView is the read model for one line: the stored snapshot plus a
// live catalog lookup. ProductName/ProductPrice are empty/zero when the
// product has since been deleted; the line itself is always rendered so the
// total keeps accounting.
type BillItemView struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
}

type BillView struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []BillItemView  `json:"items"`
}

// BillSummary is the list row joined with the customer name.
type BillSummary struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SalesSummary aggregates billing over a time window, for the periodic
// revenue report.
type SalesSummary struct {
	Since     time.Time
	BillCount int
	Revenue   decimal.Decimal
}
