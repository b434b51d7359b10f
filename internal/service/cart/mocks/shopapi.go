package mocks

import (
	"context"

	"rocketcart/internal/models"

	"github.com/stretchr/testify/mock"
)

type ShopAPI struct {
	mock.Mock
}

func (m *ShopAPI) Stock(ctx context.Context, productId int) (models.Stock, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.Stock), args.Error(1)
}

func (m *ShopAPI) Product(ctx context.Context, productId int) (models.Product, error) {
	args := m.Called(ctx, productId)
	return args.Get(0).(models.Product), args.Error(1)
}
