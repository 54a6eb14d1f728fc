package service

import (
	"context"

	"coreshop-storefront/internal/domain"
)

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type productService struct {
	api ProductAPI
}

func NewProductService(api ProductAPI) ProductService {
	return &productService{api: api}
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.api.Products(ctx)
}
