package api

import (
	"context"
	"fmt"
	"net/http"

	"coreshop-storefront/internal/domain"
)

func (c *Client) WarehouseSummary(ctx context.Context) (*domain.WarehouseSummary, error) {
	return callOne[domain.WarehouseSummary](ctx, c, http.MethodGet, "/warehouse/summary", nil, nil)
}

func (c *Client) WarehouseProducts(ctx context.Context) ([]domain.WarehouseProduct, error) {
	return call[[]domain.WarehouseProduct](ctx, c, http.MethodGet, "/warehouse/products", nil, nil)
}

func (c *Client) ProductHistory(ctx context.Context, productID int64) ([]domain.PurchaseHistoryEntry, error) {
	path := fmt.Sprintf("/warehouse/products/%d/history", productID)
	return call[[]domain.PurchaseHistoryEntry](ctx, c, http.MethodGet, path, nil, nil)
}
