package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rizalf/pos-billing-backend/internal/billing/domain"
)

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) CreateBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error {
	args := m.Called(ctx, bill, items)
	if bill != nil && args.Error(0) == nil {
		bill.ID = 1
		for i := range items {
			items[i].BillID = bill.ID
		}
		bill.Items = items
	}
	return args.Error(0)
}

func (m *MockBillRepository) GetBillWithItems(ctx context.Context, billID int64) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if b := args.Get(0); b != nil {
		return b.(*domain.Bill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) ListBillSummaries(ctx context.Context) ([]domain.BillSummary, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.([]domain.BillSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBillRepository) ReplaceBillWithItems(ctx context.Context, bill *domain.Bill, items []domain.BillItem) error {
	args := m.Called(ctx, bill, items)
	if bill != nil && args.Error(0) == nil {
		for i := range items {
			items[i].BillID = bill.ID
		}
		bill.Items = items
	}
	return args.Error(0)
}

func (m *MockBillRepository) DeleteBill(ctx context.Context, billID int64) error {
	args := m.Called(ctx, billID)
	return args.Error(0)
}

func (m *MockBillRepository) GetSalesSummarySince(ctx context.Context, since time.Time) (*domain.SalesSummary, error) {
	args := m.Called(ctx, since)
	if s := args.Get(0); s != nil {
		return s.(*domain.SalesSummary), args.Error(1)
	}
	return nil, args.Error(1)
}
