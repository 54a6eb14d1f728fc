package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"coreshop-storefront/internal/domain"
)

func (c *Client) CreateOrderFromCart(ctx context.Context) (*domain.Order, error) {
	return callOne[domain.Order](ctx, c, http.MethodPost, "/orders/from-cart", nil, struct{}{})
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, c, http.MethodGet, "/orders", nil, nil)
}

// PaymentToken mints a single-use payment session for one checkout attempt.
func (c *Client) PaymentToken(ctx context.Context, orderID int64) (*domain.PaymentSession, error) {
	path := fmt.Sprintf("/orders/%d/payment-token", orderID)
	return callOne[domain.PaymentSession](ctx, c, http.MethodPost, path, nil, struct{}{})
}

// AuthorizePayment forwards the widget's in-page completion for authorization.
func (c *Client) AuthorizePayment(ctx context.Context, completion domain.InlineCompletion) (*domain.PaymentResult, error) {
	return callOne[domain.PaymentResult](ctx, c, http.MethodPost, "/orders/payment-callback",
		callbackQuery(completion.OrderID, &completion.CheckoutSessionID), inlineCompletionBody{
			TransactionToken: completion.TransactionToken,
			PurchaseNumber:   completion.PurchaseNumber,
			Amount:           amount(completion.Amount),
		})
}

type inlineCompletionBody struct {
	TransactionToken string      `json:"transactionToken"`
	PurchaseNumber   string      `json:"purchaseNumber"`
	Amount           json.Number `json:"amount"`
}

// PaymentCallback submits the legacy gateway field set from a direct redirect.
func (c *Client) PaymentCallback(ctx context.Context, cb domain.LegacyCallback) (*domain.PaymentResult, error) {
	return callOne[domain.PaymentResult](ctx, c, http.MethodPost, "/orders/payment-callback",
		callbackQuery(cb.OrderID, cb.SessionID), cb)
}

func callbackQuery(orderID int64, sessionID *string) url.Values {
	q := url.Values{"orderId": {strconv.FormatInt(orderID, 10)}}
	if sessionID != nil && *sessionID != "" {
		q.Set("sessionId", *sessionID)
	}
	return q
}
