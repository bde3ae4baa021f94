package service

import (
	"context"

	customerRepo "github.com/rizalf/pos-billing-backend/internal/customer/repository"
	productDomain "github.com/rizalf/pos-billing-backend/internal/product/domain"
	productRepo "github.com/rizalf/pos-billing-backend/internal/product/repository"
)

// ProductCatalog is the read-only capability billing needs from the product
// side: resolve a product id to its current name and price. Returns the
// product repository's ErrProductNotFound sentinel on a miss.
type ProductCatalog interface {
	GetProductPricing(ctx context.Context, productID int64) (*productDomain.ProductPricing, error)
}

// CustomerDirectory answers whether a customer id exists.
type CustomerDirectory interface {
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
}

type catalogAdapter struct {
	products productRepo.ProductRepository
}

// NewProductCatalog exposes the product repository to billing as a catalog.
func NewProductCatalog(products productRepo.ProductRepository) ProductCatalog {
	return &catalogAdapter{products: products}
}

func (a *catalogAdapter) GetProductPricing(ctx context.Context, productID int64) (*productDomain.ProductPricing, error) {
	return a.products.GetProductPricing(ctx, productID)
}

type directoryAdapter struct {
	customers customerRepo.CustomerRepository
}

// NewCustomerDirectory exposes the customer repository to billing as an
// existence check.
func NewCustomerDirectory(customers customerRepo.CustomerRepository) CustomerDirectory {
	return &directoryAdapter{customers: customers}
}

func (a *directoryAdapter) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return a.customers.CustomerExists(ctx, customerID)
}
