package services

import (
	"context"
	"easy-shop/models"
	"time"
)

type OrderService struct {
	orders  OrderStore
	timeout time.Duration
}

func NewOrderService(orders OrderStore, timeout time.Duration) *OrderService {
	return &OrderService{orders: orders, timeout: timeout}
}

// OrdersForCustomer returns the orders whose stored email equals email,
// newest first. No match is an empty slice, not an error.
func (s *OrderService) OrdersForCustomer(ctx context.Context, email string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrder returns one order of the given customer. Orders of other
// customers are reported as not found.
func (s *OrderService) GetOrder(ctx context.Context, email, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get order", err)
	}
	if order.Email != email {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}
