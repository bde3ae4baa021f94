package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rizalf/pos-billing-backend/internal/billing/domain"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
)

var (
	ErrBillNotFound = errors.New("bill not found")
	// ErrCustomerReferenceBroken covers the race where the customer row
	// disappears between the service-level existence check and the write.
	ErrCustomerReferenceBroken = errors.New("bill references a customer that no longer exists")
)

const pgForeignKeyViolation = "23503"

// DBTX abstracts *sql.Tx so item inserts can be shared between the create
// and replace paths.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type BillRepository interface {
	CreateBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error
	GetBillWithItems(ctx context.Context, billID int64) (*domain.Bill, error)
	ListBillSummaries(ctx context.Context) ([]domain.BillSummary, error)
	ReplaceBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error
	DeleteBill(ctx context.Context, billID int64) error
	GetSalesSummarySince(ctx context.Context, since time.Time) (*domain.SalesSummary, error)
}

type postgresBillRepository struct {
	db *sql.DB
}

func NewPostgresBillRepository(db *sql.DB) BillRepository {
	return &postgresBillRepository{db: db}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// insertBillItems writes the item rows inside the caller's transaction.
func insertBillItems(ctx context.Context, tx DBTX, billID int64, items []domain.BillItem) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bill_items (bill_id, product_id, quantity, unit_price, created_at)
                                        VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range items {
		items[i].BillID = billID
		items[i].CreatedAt = time.Now()
		err = stmt.QueryRowContext(ctx, items[i].BillID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice, items[i].CreatedAt).
			Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

// CreateBillWithItems persists the header and all item rows in one
// transaction, so a failed item insert leaves nothing behind.
func (r *postgresBillRepository) CreateBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateBillWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	billQuery := `INSERT INTO bills (customer_id, total_amount, created_at, updated_at)
                  VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = time.Now()

	err = tx.QueryRowContext(ctx, billQuery, bill.CustomerID, bill.TotalAmount, bill.CreatedAt, bill.UpdatedAt).
		Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCustomerReferenceBroken
		}
		logger.Error("CreateBillWithItems: failed to insert bill", err)
		return err
	}

	if err := insertBillItems(ctx, tx, bill.ID, items); err != nil {
		logger.Error("CreateBillWithItems: failed to insert bill item", err)
		return err
	}
	bill.Items = items

	return tx.Commit()
}

// GetBillWithItems reads the header and items inside one read-only
// transaction so a concurrent replace can never yield a header with a
// half-written item set.
func (r *postgresBillRepository) GetBillWithItems(ctx context.Context, billID int64) (*domain.Bill, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		logger.Error("GetBillWithItems: failed to begin tx", err)
		return nil, err
	}
	defer tx.Rollback()

	var bill domain.Bill
	headerQuery := `SELECT id, customer_id, total_amount, created_at, updated_at FROM bills WHERE id = $1`
	err = tx.QueryRowContext(ctx, headerQuery, billID).
		Scan(&bill.ID, &bill.CustomerID, &bill.TotalAmount, &bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		logger.Error("GetBillWithItems: header query failed", err)
		return nil, err
	}

	itemsQuery := `SELECT id, bill_id, product_id, quantity, unit_price, created_at
                   FROM bill_items WHERE bill_id = $1 ORDER BY id ASC`
	rows, err := tx.QueryContext(ctx, itemsQuery, billID)
	if err != nil {
		logger.Error("GetBillWithItems: items query failed", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.CreatedAt); err != nil {
			logger.Error("GetBillWithItems: item scan failed", err)
			return nil, err
		}
		bill.Items = append(bill.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *postgresBillRepository) ListBillSummaries(ctx context.Context) ([]domain.BillSummary, error) {
	query := `SELECT bills.id, bills.customer_id, customers.name, bills.total_amount, bills.created_at
              FROM bills JOIN customers ON bills.customer_id = customers.id
              ORDER BY bills.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListBillSummaries: query failed", err)
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.BillSummary{}
	for rows.Next() {
		var s domain.BillSummary
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.CustomerName, &s.TotalAmount, &s.CreatedAt); err != nil {
			logger.Error("ListBillSummaries: scan failed", err)
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ReplaceBillWithItems atomically rewrites the whole aggregate: header
// update, delete of every old item, insert of the fresh set. Readers only
// ever see the old or the new state.
func (r *postgresBillRepository) ReplaceBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ReplaceBillWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	headerQuery := `UPDATE bills SET customer_id = $1, total_amount = $2, updated_at = NOW()
                    WHERE id = $3 RETURNING created_at, updated_at`
	err = tx.QueryRowContext(ctx, headerQuery, bill.CustomerID, bill.TotalAmount, bill.ID).
		Scan(&bill.CreatedAt, &bill.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBillNotFound
		}
		if isForeignKeyViolation(err) {
			return ErrCustomerReferenceBroken
		}
		logger.Error("ReplaceBillWithItems: header update failed", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, bill.ID); err != nil {
		logger.Error("ReplaceBillWithItems: failed to delete old items", err)
		return err
	}

	if err := insertBillItems(ctx, tx, bill.ID, items); err != nil {
		logger.Error("ReplaceBillWithItems: failed to insert bill item", err)
		return err
	}
	bill.Items = items

	return tx.Commit()
}

// DeleteBill removes the header and every item in one transaction.
func (r *postgresBillRepository) DeleteBill(ctx context.Context, billID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("DeleteBill: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bill_items WHERE bill_id = $1`, billID); err != nil {
		logger.Error("DeleteBill: failed to delete items", err)
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, billID)
	if err != nil {
		logger.Error("DeleteBill: failed to delete bill", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrBillNotFound
	}

	return tx.Commit()
}

func (r *postgresBillRepository) GetSalesSummarySince(ctx context.Context, since time.Time) (*domain.SalesSummary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM bills WHERE created_at >= $1`
	summary := domain.SalesSummary{Since: since}
	err := r.db.QueryRowContext(ctx, query, since).Scan(&summary.BillCount, &summary.Revenue)
	if err != nil {
		logger.Error("GetSalesSummarySince: query failed", err)
		return nil, err
	}
	return &summary, nil
}
