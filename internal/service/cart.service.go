package service

import (
	"context"
	"fmt"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/logging"
)

type CartService interface {
	Load(ctx context.Context) (*domain.Cart, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, productID int64) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, productID int64, quantity int) (*domain.Cart, error)
	PlaceOrder(ctx context.Context) (*domain.Order, error)
}

type cartService struct {
	api CartAPI
}

func NewCartService(api CartAPI) CartService {
	return &cartService{api: api}
}

// Load returns the user's cart; a user without one gets an empty, unpersisted cart.
func (s *cartService) Load(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.api.CartExists(ctx)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	return cart, nil
}

func (s *cartService) AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	cart, err := s.api.CartExists(ctx)
	if err != nil {
		return nil, err
	}

	items := domain.AddOrUpdateItem(cart, productID, quantity)
	if !cart.Persisted() {
		logging.FromCtx(ctx).Info("creating cart", "product_id", productID, "quantity", quantity)
		return s.api.CreateCart(ctx, items)
	}
	return s.api.UpdateCart(ctx, items)
}

func (s *cartService) RemoveItem(ctx context.Context, productID int64) (*domain.Cart, error) {
	cart, err := s.api.CartExists(ctx)
	if err != nil {
		return nil, err
	}
	items, err := domain.RemoveItem(cart, productID)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateCart(ctx, items)
}

// UpdateQuantity leaves the cart untouched, without calling the API, when the
// new quantity is below one.
func (s *cartService) UpdateQuantity(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	items, ok := domain.UpdateQuantity(cart, productID, quantity)
	if !ok {
		return cart, nil
	}
	return s.api.UpdateCart(ctx, items)
}

func (s *cartService) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	cart, err := s.api.CartExists(ctx)
	if err != nil {
		return nil, err
	}
	if !cart.HasItems() {
		return nil, domain.ErrCartEmpty
	}
	order, err := s.api.CreateOrderFromCart(ctx)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order response carried no order", domain.ErrTransport)
	}
	logging.FromCtx(ctx).Info("order created", "order_id", order.ID, "total", order.Total.String())
	return order, nil
}
