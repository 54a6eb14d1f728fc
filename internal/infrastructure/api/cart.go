package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"coreshop-storefront/internal/domain"
)

type cartRequest struct {
	Items []cartItemBody `json:"items"`
}

type cartItemBody struct {
	ProductID int64        `json:"productId"`
	Quantity  int          `json:"quantity"`
	Price     *json.Number `json:"price,omitempty"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

func newCartRequest(items []domain.CartItem) cartRequest {
	body := make([]cartItemBody, 0, len(items))
	for _, it := range items {
		b := cartItemBody{ProductID: it.ProductID, Quantity: it.Quantity, CreatedAt: it.CreatedAt}
		if it.Price != nil {
			p := amount(*it.Price)
			b.Price = &p
		}
		body = append(body, b)
	}
	return cartRequest{Items: body}
}

// CartExists returns the user's cart, or nil when the API answers 204.
func (c *Client) CartExists(ctx context.Context) (*domain.Cart, error) {
	res, err := c.do(ctx, http.MethodGet, "/carts/user/exists", nil, nil)
	if err != nil {
		return nil, err
	}
	if res.status == http.StatusNoContent || len(res.body) == 0 {
		return nil, nil
	}
	var env envelope[*domain.Cart]
	if err := json.Unmarshal(res.body, &env); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return env.Data, nil
}

func (c *Client) CreateCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error) {
	return callOne[domain.Cart](ctx, c, http.MethodPost, "/carts", nil, newCartRequest(items))
}

func (c *Client) UpdateCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error) {
	return callOne[domain.Cart](ctx, c, http.MethodPut, "/carts", nil, newCartRequest(items))
}
