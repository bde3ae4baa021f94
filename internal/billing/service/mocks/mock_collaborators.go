package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	productDomain "github.com/rizalf/pos-billing-backend/internal/product/domain"
)

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) GetProductPricing(ctx context.Context, productID int64) (*productDomain.ProductPricing, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*productDomain.ProductPricing), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCustomerDirectory struct {
	mock.Mock
}

func (m *MockCustomerDirectory) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}
