package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/rizalf/pos-billing-backend/internal/billing/domain"
	"github.com/rizalf/pos-billing-backend/internal/billing/repository"
	"github.com/rizalf/pos-billing-backend/internal/platform/config"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
	productRepo "github.com/rizalf/pos-billing-backend/internal/product/repository"
)

var (
	ErrInvalidBillRequest = errors.New("invalid bill request")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrProductNotFound    = errors.New("product not found")
)

type BillingService interface {
	CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error)
	GetBill(ctx context.Context, billID int64) (*domain.BillView, error)
	ListBills(ctx context.Context) ([]domain.BillSummary, error)
	UpdateBill(ctx context.Context, billID int64, req domain.CreateBillRequest) (*domain.Bill, error)
	DeleteBill(ctx context.Context, billID int64) error
	LogSalesSummary(ctx context.Context)
}

type billingServiceImpl struct {
	billRepo     repository.BillRepository
	catalog      ProductCatalog
	directory    CustomerDirectory
	scheduler    *cron.Cron
	summaryEvery time.Duration
}

func NewBillingService(br repository.BillRepository, catalog ProductCatalog, directory CustomerDirectory, jobCfg config.JobConfig) BillingService {
	s := &billingServiceImpl{
		billRepo:     br,
		catalog:      catalog,
		directory:    directory,
		scheduler:    cron.New(cron.WithSeconds()),
		summaryEvery: time.Duration(jobCfg.SalesSummaryWindowHours) * time.Hour,
	}
	s.initScheduler(jobCfg.SalesSummarySpec)
	return s
}

func (s *billingServiceImpl) initScheduler(spec string) {
	_, err := s.scheduler.AddFunc(spec, func() {
		logger.Info("Scheduler: Running LogSalesSummary job...")
		s.LogSalesSummary(context.Background())
	})
	if err != nil {
		logger.Error("initScheduler: invalid sales summary cron spec, job disabled", err)
		return
	}
	s.scheduler.Start()
	logger.Info(fmt.Sprintf("Sales summary scheduler initialized with spec '%s' covering the last %v", spec, s.summaryEvery))
}

// LogSalesSummary reports bill count and revenue over the configured window.
func (s *billingServiceImpl) LogSalesSummary(ctx context.Context) {
	since := time.Now().Add(-s.summaryEvery)
	summary, err := s.billRepo.GetSalesSummarySince(ctx, since)
	if err != nil {
		logger.Error("LogSalesSummary: failed to load sales summary", err)
		return
	}
	logger.Info(fmt.Sprintf("Sales summary since %s: %d bills, revenue %s",
		summary.Since.Format(time.RFC3339), summary.BillCount, summary.Revenue.StringFixed(2)))
}

// resolveBill validates a bill request and prices its items: shape first,
// then customer existence, then each product in input order (the first
// missing product wins). The returned total is the decimal sum of
// unit_price * quantity over the resolved items.
func (s *billingServiceImpl) resolveBill(ctx context.Context, req domain.CreateBillRequest) ([]domain.BillItem, decimal.Decimal, error) {
	zero := decimal.Zero
	if len(req.Items) == 0 {
		return nil, zero, fmt.Errorf("%w: bill must contain at least one item", ErrInvalidBillRequest)
	}
	for _, itemReq := range req.Items {
		if itemReq.Quantity <= 0 {
			return nil, zero, fmt.Errorf("%w: quantity must be positive for product %d", ErrInvalidBillRequest, itemReq.ProductID)
		}
	}

	exists, err := s.directory.CustomerExists(ctx, req.CustomerID)
	if err != nil {
		logger.Error("resolveBill: customer lookup failed", err)
		return nil, zero, fmt.Errorf("could not verify customer: %w", err)
	}
	if !exists {
		return nil, zero, fmt.Errorf("%w: id %d", ErrCustomerNotFound, req.CustomerID)
	}

	totalAmount := decimal.Zero
	items := make([]domain.BillItem, len(req.Items))
	for i, itemReq := range req.Items {
		pricing, err := s.catalog.GetProductPricing(ctx, itemReq.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return nil, zero, fmt.Errorf("%w: id %d", ErrProductNotFound, itemReq.ProductID)
			}
			logger.Error("resolveBill: product lookup failed", err)
			return nil, zero, fmt.Errorf("could not resolve product %d: %w", itemReq.ProductID, err)
		}

		totalAmount = totalAmount.Add(pricing.Price.Mul(decimal.NewFromInt(int64(itemReq.Quantity))))
		items[i] = domain.BillItem{
			ProductID: itemReq.ProductID,
			Quantity:  itemReq.Quantity,
			UnitPrice: pricing.Price,
		}
	}
	return items, totalAmount, nil
}

func (s *billingServiceImpl) CreateBill(ctx context.Context, req domain.CreateBillRequest) (*domain.Bill, error) {
	items, totalAmount, err := s.resolveBill(ctx, req)
	if err != nil {
		return nil, err
	}

	newBill := &domain.Bill{
		CustomerID:  req.CustomerID,
		TotalAmount: totalAmount,
	}
	if err := s.billRepo.CreateBillWithItems(ctx, newBill, items); err != nil {
		if errors.Is(err, repository.ErrCustomerReferenceBroken) {
			return nil, fmt.Errorf("%w: id %d", ErrCustomerNotFound, req.CustomerID)
		}
		logger.Error("CreateBill: failed to save bill", err)
		return nil, fmt.Errorf("could not save bill: %w", err)
	}
	return newBill, nil
}

func (s *billingServiceImpl) GetBill(ctx context.Context, billID int64) (*domain.BillView, error) {
	bill, err := s.billRepo.GetBillWithItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	view := &domain.BillView{
		ID:          bill.ID,
		CustomerID:  bill.CustomerID,
		TotalAmount: bill.TotalAmount,
		Items:       make([]domain.BillItemView, len(bill.Items)),
	}
	for i, item := range bill.Items {
		itemView := domain.BillItemView{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			ProductPrice: decimal.Zero,
		}

		// Live catalog lookup for display only. A product deleted since
		// billing renders with an empty name and zero current price; the
		// line itself is kept so the items still account for the total.
		pricing, err := s.catalog.GetProductPricing(ctx, item.ProductID)
		switch {
		case err == nil:
			itemView.ProductName = pricing.Name
			itemView.ProductPrice = pricing.Price
		case errors.Is(err, productRepo.ErrProductNotFound):
			logger.Warn(fmt.Sprintf("GetBill: product %d on bill %d no longer exists, rendering placeholder", item.ProductID, bill.ID))
		default:
			logger.Error("GetBill: product lookup failed", err)
			return nil, fmt.Errorf("could not resolve product %d: %w", item.ProductID, err)
		}

		view.Items[i] = itemView
	}
	return view, nil
}

func (s *billingServiceImpl) ListBills(ctx context.Context) ([]domain.BillSummary, error) {
	return s.billRepo.ListBillSummaries(ctx)
}

func (s *billingServiceImpl) UpdateBill(ctx context.Context, billID int64, req domain.CreateBillRequest) (*domain.Bill, error) {
	// Customer existence is re-checked on update as well, matching create.
	items, totalAmount, err := s.resolveBill(ctx, req)
	if err != nil {
		return nil, err
	}

	bill := &domain.Bill{
		ID:          billID,
		CustomerID:  req.CustomerID,
		TotalAmount: totalAmount,
	}
	if err := s.billRepo.ReplaceBillWithItems(ctx, bill, items); err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return nil, err
		}
		if errors.Is(err, repository.ErrCustomerReferenceBroken) {
			return nil, fmt.Errorf("%w: id %d", ErrCustomerNotFound, req.CustomerID)
		}
		logger.Error("UpdateBill: failed to replace bill", err)
		return nil, fmt.Errorf("could not update bill: %w", err)
	}
	return bill, nil
}

func (s *billingServiceImpl) DeleteBill(ctx context.Context, billID int64) error {
	return s.billRepo.DeleteBill(ctx, billID)
}
