package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rizalf/pos-billing-backend/internal/customer/domain"
	"github.com/rizalf/pos-billing-backend/internal/customer/repository"
	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req domain.CreateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type customerServiceImpl struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerServiceImpl{repo: repo}
}

func (s *customerServiceImpl) CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:    strings.TrimSpace(req.Name),
		Gender:  strings.TrimSpace(req.Gender),
		Contact: strings.TrimSpace(req.Contact),
		Email:   strings.TrimSpace(strings.ToLower(req.Email)),
	}

	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		logger.Error("CreateCustomer: failed to save customer", err)
		return nil, fmt.Errorf("could not save customer: %w", err)
	}
	return customer, nil
}

func (s *customerServiceImpl) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *customerServiceImpl) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetCustomerByID(ctx, id)
}

func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, id int64, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Gender:  strings.TrimSpace(req.Gender),
		Contact: strings.TrimSpace(req.Contact),
		Email:   strings.TrimSpace(strings.ToLower(req.Email)),
	}

	if err := s.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerServiceImpl) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
