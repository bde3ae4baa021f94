package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rizalf/pos-billing-backend/internal/billing/domain"
	billRepo "github.com/rizalf/pos-billing-backend/internal/billing/repository"
	"github.com/rizalf/pos-billing-backend/internal/billing/repository/mocks"
	svcMocks "github.com/rizalf/pos-billing-backend/internal/billing/service/mocks"
	"github.com/rizalf/pos-billing-backend/internal/platform/config"
	productDomain "github.com/rizalf/pos-billing-backend/internal/product/domain"
	productRepo "github.com/rizalf/pos-billing-backend/internal/product/repository"
)

// Daily spec keeps the scheduler from firing mid-test.
var testJobCfg = config.JobConfig{SalesSummarySpec: "0 0 0 * * *", SalesSummaryWindowHours: 24}

func newBillingServiceForTest() (BillingService, *mocks.MockBillRepository, *svcMocks.MockProductCatalog, *svcMocks.MockCustomerDirectory) {
	mockRepo := new(mocks.MockBillRepository)
	mockCatalog := new(svcMocks.MockProductCatalog)
	mockDirectory := new(svcMocks.MockCustomerDirectory)
	svc := NewBillingService(mockRepo, mockCatalog, mockDirectory, testJobCfg)
	return svc, mockRepo, mockCatalog, mockDirectory
}

func pricing(id int64, name, price string) *productDomain.ProductPricing {
	return &productDomain.ProductPricing{ProductID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestBillingService_CreateBill(t *testing.T) {
	ctx := context.TODO()
	createBillReq := domain.CreateBillRequest{
		CustomerID: 1,
		Items: []domain.CreateBillItemRequest{
			{ProductID: 10, Quantity: 2},
			{ProductID: 20, Quantity: 3},
		},
	}

	t.Run("Successful bill creation computes decimal total", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(10)).Return(pricing(10, "Keyboard", "10.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(pricing(20, "Mouse", "5.50"), nil).Once()
		mockRepo.On("CreateBillWithItems", ctx, mock.AnythingOfType("*domain.Bill"), mock.AnythingOfType("[]domain.BillItem")).Return(nil).Once()

		bill, err := svc.CreateBill(ctx, createBillReq)

		assert.NoError(t, err)
		assert.NotNil(t, bill)
		assert.Equal(t, int64(1), bill.ID) // ID assigned by the mock repo
		assert.True(t, bill.TotalAmount.Equal(decimal.RequireFromString("36.50")),
			"expected total 36.50, got %s", bill.TotalAmount)
		assert.Len(t, bill.Items, 2)
		assert.True(t, bill.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
		assert.True(t, bill.Items[1].UnitPrice.Equal(decimal.RequireFromString("5.50")))
		mockRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
		mockDirectory.AssertExpectations(t)
	})

	t.Run("Empty item list is rejected before any lookup", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()

		bill, err := svc.CreateBill(ctx, domain.CreateBillRequest{CustomerID: 1})

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrInvalidBillRequest)
		mockDirectory.AssertNotCalled(t, "CustomerExists")
		mockCatalog.AssertNotCalled(t, "GetProductPricing")
		mockRepo.AssertNotCalled(t, "CreateBillWithItems")
	})

	t.Run("Non-positive quantity is rejected", func(t *testing.T) {
		svc, mockRepo, _, _ := newBillingServiceForTest()
		req := domain.CreateBillRequest{
			CustomerID: 1,
			Items:      []domain.CreateBillItemRequest{{ProductID: 10, Quantity: 0}},
		}

		bill, err := svc.CreateBill(ctx, req)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrInvalidBillRequest)
		mockRepo.AssertNotCalled(t, "CreateBillWithItems")
	})

	t.Run("Missing customer fails before product resolution", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(false, nil).Once()

		bill, err := svc.CreateBill(ctx, createBillReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		mockCatalog.AssertNotCalled(t, "GetProductPricing")
		mockRepo.AssertNotCalled(t, "CreateBillWithItems")
		mockDirectory.AssertExpectations(t)
	})

	t.Run("First missing product is reported and nothing is persisted", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(10)).Return(pricing(10, "Keyboard", "10.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(nil, productRepo.ErrProductNotFound).Once()

		bill, err := svc.CreateBill(ctx, createBillReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Contains(t, err.Error(), "id 20")
		mockRepo.AssertNotCalled(t, "CreateBillWithItems")
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Repository failure is not conflated with domain errors", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(10)).Return(pricing(10, "Keyboard", "10.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(pricing(20, "Mouse", "5.50"), nil).Once()
		repoErr := errors.New("db transaction error")
		mockRepo.On("CreateBillWithItems", ctx, mock.AnythingOfType("*domain.Bill"), mock.AnythingOfType("[]domain.BillItem")).Return(repoErr).Once()

		bill, err := svc.CreateBill(ctx, createBillReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.NotErrorIs(t, err, ErrInvalidBillRequest)
		assert.NotErrorIs(t, err, ErrCustomerNotFound)
		assert.NotErrorIs(t, err, ErrProductNotFound)
		assert.Contains(t, err.Error(), repoErr.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestBillingService_GetBill(t *testing.T) {
	ctx := context.TODO()
	storedBill := &domain.Bill{
		ID:          7,
		CustomerID:  1,
		TotalAmount: decimal.RequireFromString("36.50"),
		Items: []domain.BillItem{
			{ID: 1, BillID: 7, ProductID: 10, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ID: 2, BillID: 7, ProductID: 20, Quantity: 3, UnitPrice: decimal.RequireFromString("5.50")},
		},
	}

	t.Run("Snapshot prices survive later catalog changes", func(t *testing.T) {
		svc, mockRepo, mockCatalog, _ := newBillingServiceForTest()
		mockRepo.On("GetBillWithItems", ctx, int64(7)).Return(storedBill, nil).Once()
		// Catalog price of product 10 has doubled since billing.
		mockCatalog.On("GetProductPricing", ctx, int64(10)).Return(pricing(10, "Keyboard", "20.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(pricing(20, "Mouse", "5.50"), nil).Once()

		view, err := svc.GetBill(ctx, 7)

		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.True(t, view.TotalAmount.Equal(decimal.RequireFromString("36.50")))
		assert.Len(t, view.Items, 2)
		assert.True(t, view.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
		assert.True(t, view.Items[0].LineTotal.Equal(decimal.RequireFromString("20.00")))
		assert.True(t, view.Items[0].ProductPrice.Equal(decimal.RequireFromString("20.00")))
		assert.Equal(t, "Keyboard", view.Items[0].ProductName)
		assert.True(t, view.Items[1].LineTotal.Equal(decimal.RequireFromString("16.50")))
		mockRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Deleted product renders placeholder line, never dropped", func(t *testing.T) {
		svc, mockRepo, mockCatalog, _ := newBillingServiceForTest()
		mockRepo.On("GetBillWithItems", ctx, int64(7)).Return(storedBill, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(10)).Return(pricing(10, "Keyboard", "10.00"), nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(nil, productRepo.ErrProductNotFound).Once()

		view, err := svc.GetBill(ctx, 7)

		assert.NoError(t, err)
		assert.NotNil(t, view)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, "", view.Items[1].ProductName)
		assert.True(t, view.Items[1].ProductPrice.IsZero())
		assert.True(t, view.Items[1].UnitPrice.Equal(decimal.RequireFromString("5.50")))
		assert.True(t, view.Items[1].LineTotal.Equal(decimal.RequireFromString("16.50")))
		mockRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Bill not found", func(t *testing.T) {
		svc, mockRepo, mockCatalog, _ := newBillingServiceForTest()
		mockRepo.On("GetBillWithItems", ctx, int64(99)).Return(nil, billRepo.ErrBillNotFound).Once()

		view, err := svc.GetBill(ctx, 99)

		assert.Error(t, err)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, billRepo.ErrBillNotFound)
		mockCatalog.AssertNotCalled(t, "GetProductPricing")
	})
}

func TestBillingService_UpdateBill(t *testing.T) {
	ctx := context.TODO()
	updateReq := domain.CreateBillRequest{
		CustomerID: 1,
		Items:      []domain.CreateBillItemRequest{{ProductID: 20, Quantity: 1}},
	}

	t.Run("Full replace recomputes total from the new set only", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(pricing(20, "Mouse", "5.50"), nil).Once()
		mockRepo.On("ReplaceBillWithItems", ctx, mock.AnythingOfType("*domain.Bill"), mock.AnythingOfType("[]domain.BillItem")).Return(nil).Once()

		bill, err := svc.UpdateBill(ctx, 7, updateReq)

		assert.NoError(t, err)
		assert.NotNil(t, bill)
		assert.Equal(t, int64(7), bill.ID)
		assert.True(t, bill.TotalAmount.Equal(decimal.RequireFromString("5.50")))
		assert.Len(t, bill.Items, 1)
		assert.Equal(t, int64(20), bill.Items[0].ProductID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Customer existence is re-validated on update", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(false, nil).Once()

		bill, err := svc.UpdateBill(ctx, 7, updateReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
		mockCatalog.AssertNotCalled(t, "GetProductPricing")
		mockRepo.AssertNotCalled(t, "ReplaceBillWithItems")
	})

	t.Run("Missing product aborts the replace", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(nil, productRepo.ErrProductNotFound).Once()

		bill, err := svc.UpdateBill(ctx, 7, updateReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, ErrProductNotFound)
		mockRepo.AssertNotCalled(t, "ReplaceBillWithItems")
	})

	t.Run("Bill not found", func(t *testing.T) {
		svc, mockRepo, mockCatalog, mockDirectory := newBillingServiceForTest()
		mockDirectory.On("CustomerExists", ctx, int64(1)).Return(true, nil).Once()
		mockCatalog.On("GetProductPricing", ctx, int64(20)).Return(pricing(20, "Mouse", "5.50"), nil).Once()
		mockRepo.On("ReplaceBillWithItems", ctx, mock.AnythingOfType("*domain.Bill"), mock.AnythingOfType("[]domain.BillItem")).Return(billRepo.ErrBillNotFound).Once()

		bill, err := svc.UpdateBill(ctx, 99, updateReq)

		assert.Error(t, err)
		assert.Nil(t, bill)
		assert.ErrorIs(t, err, billRepo.ErrBillNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestBillingService_DeleteBill(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful delete", func(t *testing.T) {
		svc, mockRepo, _, _ := newBillingServiceForTest()
		mockRepo.On("DeleteBill", ctx, int64(7)).Return(nil).Once()

		err := svc.DeleteBill(ctx, 7)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Bill not found", func(t *testing.T) {
		svc, mockRepo, _, _ := newBillingServiceForTest()
		mockRepo.On("DeleteBill", ctx, int64(99)).Return(billRepo.ErrBillNotFound).Once()

		err := svc.DeleteBill(ctx, 99)

		assert.ErrorIs(t, err, billRepo.ErrBillNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestBillingService_LogSalesSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Reports count and revenue for the window", func(t *testing.T) {
		svc, mockRepo, _, _ := newBillingServiceForTest()
		summary := &domain.SalesSummary{
			Since:     time.Now().Add(-24 * time.Hour),
			BillCount: 3,
			Revenue:   decimal.RequireFromString("109.50"),
		}
		mockRepo.On("GetSalesSummarySince", ctx, mock.AnythingOfType("time.Time")).Return(summary, nil).Once()

		svc.LogSalesSummary(ctx)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository failure is swallowed, job runs again next tick", func(t *testing.T) {
		svc, mockRepo, _, _ := newBillingServiceForTest()
		mockRepo.On("GetSalesSummarySince", ctx, mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down")).Once()

		svc.LogSalesSummary(ctx)

		mockRepo.AssertExpectations(t)
	})
}
