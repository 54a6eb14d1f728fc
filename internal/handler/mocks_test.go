package handler

import (
	"context"
	"net/url"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/infrastructure/payment"
	"coreshop-storefront/internal/service"
)

type fakeAuth struct {
	sessions  map[string]*domain.Session
	login     *domain.Session
	loginErr  error
	loggedOut []string
	profile   *domain.UserProfile
}

func (f *fakeAuth) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	return f.login, f.loginErr
}

func (f *fakeAuth) Logout(_ context.Context, id string) error {
	f.loggedOut = append(f.loggedOut, id)
	delete(f.sessions, id)
	return nil
}

func (f *fakeAuth) Session(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeAuth) Profile(context.Context) (*domain.UserProfile, error) {
	return f.profile, nil
}

type fakeProducts struct {
	products []domain.Product
}

func (f *fakeProducts) List(context.Context) ([]domain.Product, error) {
	return f.products, nil
}

type fakeCart struct {
	cart      *domain.Cart
	order     *domain.Order
	err       error
	added     [2]int64
	updated   [2]int64
	removedID int64
}

func (f *fakeCart) Load(context.Context) (*domain.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) AddToCart(_ context.Context, productID int64, quantity int) (*domain.Cart, error) {
	f.added = [2]int64{productID, int64(quantity)}
	return f.cart, f.err
}

func (f *fakeCart) RemoveItem(_ context.Context, productID int64) (*domain.Cart, error) {
	f.removedID = productID
	return f.cart, f.err
}

func (f *fakeCart) UpdateQuantity(_ context.Context, productID int64, quantity int) (*domain.Cart, error) {
	f.updated = [2]int64{productID, int64(quantity)}
	return f.cart, f.err
}

func (f *fakeCart) PlaceOrder(context.Context) (*domain.Order, error) {
	return f.order, f.err
}

type fakeOrders struct {
	orders []domain.Order
}

func (f *fakeOrders) List(context.Context) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrders) Find(_ context.Context, id int64) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

type fakeCheckout struct {
	opts      payment.WidgetOptions
	beginErr  error
	outcome   *service.CheckoutOutcome
	// openOrder is the order the widget is open for.
	openOrder int64
	orderID   int64
	token     string
	state     domain.CheckoutState
	forgotten []string
}

func (f *fakeCheckout) Begin(_ context.Context, _ string, _ int64) (payment.WidgetOptions, error) {
	return f.opts, f.beginErr
}

func (f *fakeCheckout) Complete(_ context.Context, _ string, orderID int64, token string) (*service.CheckoutOutcome, error) {
	f.orderID, f.token = orderID, token
	if f.outcome == nil || orderID != f.openOrder {
		return nil, domain.ErrNoOpenCheckout
	}
	return f.outcome, nil
}

func (f *fakeCheckout) State(string) domain.CheckoutState {
	return f.state
}

func (f *fakeCheckout) Reset(string) {}

func (f *fakeCheckout) Forget(key string) {
	f.forgotten = append(f.forgotten, key)
}

type fakeResults struct {
	sessionKey string
}

func (f *fakeResults) Interpret(_ context.Context, sessionKey string, params url.Values) (*domain.PaymentResult, error) {
	f.sessionKey = sessionKey
	cb, err := domain.ParseGatewayCallback(params)
	if err != nil {
		return nil, err
	}
	r, ok := cb.(domain.RedirectOutcome)
	if !ok {
		return nil, domain.ErrPaymentProcessing
	}
	return &domain.PaymentResult{
		OrderID:           r.OrderID,
		NewStatus:         "completed",
		PaymentSuccessful: true,
		CardBrand:         r.CardBrand,
	}, nil
}

type fakeWarehouse struct {
	filter domain.WarehouseFilter
}

func (f *fakeWarehouse) Summary(context.Context) (*domain.WarehouseSummary, error) {
	return &domain.WarehouseSummary{TotalProducts: 3}, nil
}

func (f *fakeWarehouse) Products(_ context.Context, filter domain.WarehouseFilter) ([]domain.WarehouseProduct, error) {
	f.filter = filter
	return []domain.WarehouseProduct{}, nil
}

func (f *fakeWarehouse) Categories(context.Context) ([]string, error) {
	return []string{"Audio"}, nil
}

func (f *fakeWarehouse) History(context.Context, int64) ([]domain.PurchaseHistoryEntry, error) {
	return []domain.PurchaseHistoryEntry{{OrderID: 1}}, nil
}

type fakeSupport struct {
	live      []domain.Ticket
	status    string
	forgotten []string
}

func (f *fakeSupport) List(_ context.Context, _ string, status string) ([]domain.Ticket, error) {
	f.status = status
	return f.live, nil
}

func (f *fakeSupport) Create(_ context.Context, _ string, req domain.TicketRequest) (*domain.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &domain.Ticket{ID: 9, Subject: req.Subject, Status: domain.TicketPending, RemainingSeconds: 65}, nil
}

func (f *fakeSupport) Get(_ context.Context, id int64) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id}, nil
}

func (f *fakeSupport) Live(string) []domain.Ticket {
	return f.live
}

func (f *fakeSupport) Forget(key string) {
	f.forgotten = append(f.forgotten, key)
}
