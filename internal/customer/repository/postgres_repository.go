package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rizalf/pos-billing-backend/internal/customer/domain"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	CustomerExists(ctx context.Context, id int64) (bool, error)
}

type postgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) CustomerRepository {
	return &postgresCustomerRepository{db: db}
}

func (r *postgresCustomerRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `INSERT INTO customers (name, gender, contact, email, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query, customer.Name, customer.Gender, customer.Contact, customer.Email, customer.CreatedAt, customer.UpdatedAt).
		Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		logger.Error("CreateCustomer: failed to insert customer", err)
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, name, gender, contact, email, created_at, updated_at FROM customers ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListCustomers: query failed", err)
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Gender, &c.Contact, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			logger.Error("ListCustomers: scan failed", err)
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *postgresCustomerRepository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT id, name, gender, contact, email, created_at, updated_at FROM customers WHERE id = $1`
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Gender, &c.Contact, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		logger.Error("GetCustomerByID: query failed", err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `UPDATE customers SET name = $1, gender = $2, contact = $3, email = $4, updated_at = NOW()
              WHERE id = $5 RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, customer.Name, customer.Gender, customer.Contact, customer.Email, customer.ID).
		Scan(&customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		logger.Error("UpdateCustomer: exec failed", err)
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteCustomer: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *postgresCustomerRepository) CustomerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.Error("CustomerExists: query failed", err)
		return false, err
	}
	return exists, nil
}
