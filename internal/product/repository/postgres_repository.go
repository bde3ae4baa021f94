package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
	"github.com/rizalf/pos-billing-backend/internal/product/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	GetProductPricing(ctx context.Context, id int64) (*domain.ProductPricing, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (name, price, quantity, brand, supplier, old_stock, category, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Price, product.Quantity, product.Brand,
		product.Supplier, product.OldStock, product.Category,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, price, quantity, brand, supplier, old_stock, category, created_at, updated_at
              FROM products ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Brand, &p.Supplier, &p.OldStock, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, price, quantity, brand, supplier, old_stock, category, created_at, updated_at
              FROM products WHERE id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Brand, &p.Supplier, &p.OldStock, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $1, price = $2, quantity = $3, brand = $4, supplier = $5,
              old_stock = $6, category = $7, updated_at = NOW()
              WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Price, product.Quantity, product.Brand,
		product.Supplier, product.OldStock, product.Category, product.ID,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		logger.Error("UpdateProduct: exec failed", err)
		return err
	}
	return nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// GetProductPricing resolves the current catalog price for one product.
// Billing snapshots this value into bill items, it never reads it back.
func (r *postgresProductRepository) GetProductPricing(ctx context.Context, id int64) (*domain.ProductPricing, error) {
	query := `SELECT id, name, price FROM products WHERE id = $1`
	var pricing domain.ProductPricing
	err := r.db.QueryRowContext(ctx, query, id).Scan(&pricing.ProductID, &pricing.Name, &pricing.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductPricing: query failed", err)
		return nil, err
	}
	return &pricing, nil
}
