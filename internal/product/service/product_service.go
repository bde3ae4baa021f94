package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rizalf/pos-billing-backend/internal/platform/logger"
	"github.com/rizalf/pos-billing-backend/internal/product/domain"
	"github.com/rizalf/pos-billing-backend/internal/product/repository"
)

var ErrInvalidProductPrice = errors.New("product price must not be negative")

type ProductService interface {
	CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req domain.CreateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

func (s *productServiceImpl) productFromRequest(req domain.CreateProductRequest) (*domain.Product, error) {
	if req.Price.IsNegative() {
		return nil, ErrInvalidProductPrice
	}
	return &domain.Product{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Quantity: req.Quantity,
		Brand:    strings.TrimSpace(req.Brand),
		Supplier: strings.TrimSpace(req.Supplier),
		OldStock: req.OldStock,
		Category: strings.TrimSpace(req.Category),
	}, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		logger.Error("CreateProduct: failed to save product", err)
		return nil, fmt.Errorf("could not save product: %w", err)
	}
	return product, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id int64, req domain.CreateProductRequest) (*domain.Product, error) {
	product, err := s.productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}
