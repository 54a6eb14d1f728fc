package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"coreshop-storefront/internal/domain"
)

func (c *Client) Tickets(ctx context.Context, status string) ([]domain.Ticket, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	return call[[]domain.Ticket](ctx, c, http.MethodGet, "/support/tickets", q, nil)
}

func (c *Client) CreateTicket(ctx context.Context, req domain.TicketRequest) (*domain.Ticket, error) {
	return callOne[domain.Ticket](ctx, c, http.MethodPost, "/support/tickets", nil, req)
}

func (c *Client) Ticket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return callOne[domain.Ticket](ctx, c, http.MethodGet, fmt.Sprintf("/support/tickets/%d", id), nil, nil)
}
