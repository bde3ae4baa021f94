package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rizalf/pos-billing-backend/internal/customer/domain"
	"github.com/rizalf/pos-billing-backend/internal/customer/repository"
	"github.com/rizalf/pos-billing-backend/internal/customer/repository/mocks"
)

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful creation normalizes fields", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		mockRepo.On("CreateCustomer", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil).Once()

		customer, err := svc.CreateCustomer(ctx, domain.CreateCustomerRequest{
			Name:    "  Jane Roe ",
			Gender:  "female",
			Contact: "0812000111",
			Email:   " Jane@Example.COM ",
		})

		assert.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, int64(1), customer.ID) // assigned by the mock repo
		assert.Equal(t, "Jane Roe", customer.Name)
		assert.Equal(t, "jane@example.com", customer.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		repoErr := errors.New("insert failed")
		mockRepo.On("CreateCustomer", ctx, mock.AnythingOfType("*domain.Customer")).Return(repoErr).Once()

		customer, err := svc.CreateCustomer(ctx, domain.CreateCustomerRequest{
			Name: "Jane", Gender: "female", Contact: "0812", Email: "jane@example.com",
		})

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), repoErr.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.TODO()

	t.Run("Existing customer returned", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		stored := &domain.Customer{ID: 5, Name: "Jane"}
		mockRepo.On("GetCustomerByID", ctx, int64(5)).Return(stored, nil).Once()

		customer, err := svc.GetCustomer(ctx, 5)

		assert.NoError(t, err)
		assert.Equal(t, stored, customer)
	})

	t.Run("Not found passes through", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		mockRepo.On("GetCustomerByID", ctx, int64(99)).Return(nil, repository.ErrCustomerNotFound).Once()

		customer, err := svc.GetCustomer(ctx, 99)

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.TODO()

	t.Run("Full replacement keeps the id", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		mockRepo.On("UpdateCustomer", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil).Once()

		customer, err := svc.UpdateCustomer(ctx, 5, domain.CreateCustomerRequest{
			Name: "Jane Doe", Gender: "female", Contact: "0812", Email: "jane@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(5), customer.ID)
		assert.Equal(t, "Jane Doe", customer.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found passes through", func(t *testing.T) {
		mockRepo := new(mocks.MockCustomerRepository)
		svc := NewCustomerService(mockRepo)
		mockRepo.On("UpdateCustomer", ctx, mock.AnythingOfType("*domain.Customer")).Return(repository.ErrCustomerNotFound).Once()

		customer, err := svc.UpdateCustomer(ctx, 99, domain.CreateCustomerRequest{
			Name: "Jane", Gender: "female", Contact: "0812", Email: "jane@example.com",
		})

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.TODO()
	mockRepo := new(mocks.MockCustomerRepository)
	svc := NewCustomerService(mockRepo)

	mockRepo.On("DeleteCustomer", ctx, int64(5)).Return(nil).Once()
	mockRepo.On("DeleteCustomer", ctx, int64(99)).Return(repository.ErrCustomerNotFound).Once()

	assert.NoError(t, svc.DeleteCustomer(ctx, 5))
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, 99), repository.ErrCustomerNotFound)
	mockRepo.AssertExpectations(t)
}
