package mocks

import (
	"context"

	"rocketcart/internal/models"
	"rocketcart/internal/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Cart() []models.CartItem {
	args := m.Called()
	return args.Get(0).([]models.CartItem)
}

func (m *Service) Total() decimal.Decimal {
	args := m.Called()
	return args.Get(0).(decimal.Decimal)
}

func (m *Service) AddProduct(ctx context.Context, productId int) error {
	args := m.Called(ctx, productId)
	return args.Error(0)
}

func (m *Service) RemoveProduct(ctx context.Context, productId int) error {
	args := m.Called(ctx, productId)
	return args.Error(0)
}

func (m *Service) UpdateProductAmount(ctx context.Context, upd models.UpdateProductAmount) error {
	args := m.Called(ctx, upd)
	return args.Error(0)
}

type Feed struct {
	mock.Mock
}

func (m *Feed) Recent() []notify.Notification {
	args := m.Called()
	return args.Get(0).([]notify.Notification)
}
