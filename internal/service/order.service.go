package service

import (
	"context"

	"coreshop-storefront/internal/domain"
)

type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Find(ctx context.Context, orderID int64) (*domain.Order, error)
}

type orderService struct {
	api OrderAPI
}

func NewOrderService(api OrderAPI) OrderService {
	return &orderService{api: api}
}

func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.api.Orders(ctx)
}

// Find looks the order up in the user's order list; the API has no single-order read.
func (s *orderService) Find(ctx context.Context, orderID int64) (*domain.Order, error) {
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, domain.ErrOrderNotFound
}
