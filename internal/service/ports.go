package service

import (
	"context"
	"time"

	"coreshop-storefront/internal/domain"
)

// The storefront API calls each service needs; *api.Client satisfies all of them.

type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResponse, error)
	Profile(ctx context.Context) (*domain.UserProfile, error)
}

type ProductAPI interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

type CartAPI interface {
	CartExists(ctx context.Context) (*domain.Cart, error)
	CreateCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error)
	UpdateCart(ctx context.Context, items []domain.CartItem) (*domain.Cart, error)
	CreateOrderFromCart(ctx context.Context) (*domain.Order, error)
}

type OrderAPI interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	PaymentToken(ctx context.Context, orderID int64) (*domain.PaymentSession, error)
	AuthorizePayment(ctx context.Context, completion domain.InlineCompletion) (*domain.PaymentResult, error)
	PaymentCallback(ctx context.Context, cb domain.LegacyCallback) (*domain.PaymentResult, error)
}

type WarehouseAPI interface {
	WarehouseSummary(ctx context.Context) (*domain.WarehouseSummary, error)
	WarehouseProducts(ctx context.Context) ([]domain.WarehouseProduct, error)
	ProductHistory(ctx context.Context, productID int64) ([]domain.PurchaseHistoryEntry, error)
}

type SupportAPI interface {
	Tickets(ctx context.Context, status string) ([]domain.Ticket, error)
	CreateTicket(ctx context.Context, req domain.TicketRequest) (*domain.Ticket, error)
	Ticket(ctx context.Context, id int64) (*domain.Ticket, error)
}

type SessionStore interface {
	Save(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Expiry(token string) time.Time
}

// TicketBoard holds the tickets shown to each session while their countdown runs.
type TicketBoard interface {
	Replace(sessionKey string, tickets []domain.Ticket)
	Prepend(sessionKey string, ticket domain.Ticket)
	Snapshot(sessionKey string) []domain.Ticket
	Drop(sessionKey string)
}
