package service

import (
	"context"

	"coreshop-storefront/internal/domain"
)

type WarehouseService interface {
	Summary(ctx context.Context) (*domain.WarehouseSummary, error)
	Products(ctx context.Context, filter domain.WarehouseFilter) ([]domain.WarehouseProduct, error)
	Categories(ctx context.Context) ([]string, error)
	History(ctx context.Context, productID int64) ([]domain.PurchaseHistoryEntry, error)
}

type warehouseService struct {
	api WarehouseAPI
}

func NewWarehouseService(api WarehouseAPI) WarehouseService {
	return &warehouseService{api: api}
}

func (s *warehouseService) Summary(ctx context.Context) (*domain.WarehouseSummary, error) {
	return s.api.WarehouseSummary(ctx)
}

func (s *warehouseService) Products(ctx context.Context, filter domain.WarehouseFilter) ([]domain.WarehouseProduct, error) {
	products, err := s.api.WarehouseProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterProducts(products, filter), nil
}

func (s *warehouseService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.api.WarehouseProducts(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Categories(products), nil
}

func (s *warehouseService) History(ctx context.Context, productID int64) ([]domain.PurchaseHistoryEntry, error) {
	return s.api.ProductHistory(ctx, productID)
}
