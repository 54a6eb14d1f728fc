package service

import (
	"context"
	"sync"
	"time"

	"coreshop-storefront/internal/domain"

	"github.com/google/uuid"
)

// mockAPI implements every storefront API port with canned answers.
type mockAPI struct {
	mu sync.Mutex

	cart       *domain.Cart
	cartErr    error
	created    [][]domain.CartItem
	updated    [][]domain.CartItem
	order      *domain.Order
	orders     []domain.Order
	ordersErr  error
	session    *domain.PaymentSession
	sessionErr error
	// tokenGate, when set, blocks PaymentToken until closed.
	tokenGate    chan struct{}
	tokenCalls   int
	authorized   []domain.InlineCompletion
	authResult   *domain.PaymentResult
	authErr      error
	// authGate, when set, blocks AuthorizePayment until closed.
	authGate     chan struct{}
	legacy       []domain.LegacyCallback
	legacyResult *domain.PaymentResult
	legacyErr    error

	login    *domain.LoginResponse
	loginErr error
	profile  *domain.UserProfile

	products []domain.Product
	summary  *domain.WarehouseSummary
	stock    []domain.WarehouseProduct
	history  []domain.PurchaseHistoryEntry

	tickets      []domain.Ticket
	ticketStatus string
	ticket       *domain.Ticket
	ticketErr    error
}

func (m *mockAPI) CartExists(context.Context) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart, m.cartErr
}

func (m *mockAPI) CreateCart(_ context.Context, items []domain.CartItem) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, items)
	id := int64(1)
	return &domain.Cart{ID: &id, Items: items}, nil
}

func (m *mockAPI) UpdateCart(_ context.Context, items []domain.CartItem) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, items)
	return &domain.Cart{ID: m.cart.ID, Items: items}, nil
}

func (m *mockAPI) CreateOrderFromCart(context.Context) (*domain.Order, error) {
	return m.order, nil
}

func (m *mockAPI) Orders(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders, m.ordersErr
}

func (m *mockAPI) PaymentToken(context.Context, int64) (*domain.PaymentSession, error) {
	m.mu.Lock()
	m.tokenCalls++
	gate := m.tokenGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return m.session, m.sessionErr
}

func (m *mockAPI) AuthorizePayment(_ context.Context, c domain.InlineCompletion) (*domain.PaymentResult, error) {
	m.mu.Lock()
	m.authorized = append(m.authorized, c)
	gate := m.authGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authResult, m.authErr
}

func (m *mockAPI) PaymentCallback(_ context.Context, cb domain.LegacyCallback) (*domain.PaymentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legacy = append(m.legacy, cb)
	return m.legacyResult, m.legacyErr
}

func (m *mockAPI) Login(context.Context, domain.Credentials) (*domain.LoginResponse, error) {
	return m.login, m.loginErr
}

func (m *mockAPI) Profile(context.Context) (*domain.UserProfile, error) {
	return m.profile, nil
}

func (m *mockAPI) Products(context.Context) ([]domain.Product, error) {
	return m.products, nil
}

func (m *mockAPI) WarehouseSummary(context.Context) (*domain.WarehouseSummary, error) {
	return m.summary, nil
}

func (m *mockAPI) WarehouseProducts(context.Context) ([]domain.WarehouseProduct, error) {
	return m.stock, nil
}

func (m *mockAPI) ProductHistory(context.Context, int64) ([]domain.PurchaseHistoryEntry, error) {
	return m.history, nil
}

func (m *mockAPI) Tickets(_ context.Context, status string) ([]domain.Ticket, error) {
	m.ticketStatus = status
	return m.tickets, m.ticketErr
}

func (m *mockAPI) CreateTicket(context.Context, domain.TicketRequest) (*domain.Ticket, error) {
	return m.ticket, m.ticketErr
}

func (m *mockAPI) Ticket(context.Context, int64) (*domain.Ticket, error) {
	return m.ticket, m.ticketErr
}

type resolution struct {
	sessionKey        string
	checkoutSessionID string
	orderID           int64
	successful        bool
	message           string
}

// mockAttemptRepo implements repo.AttemptRepo in memory.
type mockAttemptRepo struct {
	mu          sync.Mutex
	created     []domain.PaymentAttempt
	authorizing []string
	resolved    []resolution
	expired     []uuid.UUID
	open        []domain.PaymentAttempt
	err         error
}

func (m *mockAttemptRepo) Create(_ context.Context, a *domain.PaymentAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *a)
	return m.err
}

func (m *mockAttemptRepo) MarkAuthorizing(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authorizing = append(m.authorizing, id)
	return m.err
}

func (m *mockAttemptRepo) Resolve(_ context.Context, key, id string, ok bool, msg string) (*domain.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = append(m.resolved, resolution{sessionKey: key, checkoutSessionID: id, successful: ok, message: msg})
	return nil, m.err
}

func (m *mockAttemptRepo) ResolveLatestForOrder(_ context.Context, key string, orderID int64, ok bool, msg string) (*domain.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolved = append(m.resolved, resolution{sessionKey: key, orderID: orderID, successful: ok, message: msg})
	return nil, m.err
}

func (m *mockAttemptRepo) FindByCheckoutSession(context.Context, string) (*domain.PaymentAttempt, error) {
	return nil, m.err
}

func (m *mockAttemptRepo) FindOpenBefore(context.Context, time.Time, int) ([]domain.PaymentAttempt, error) {
	return m.open, m.err
}

func (m *mockAttemptRepo) Expire(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expired = append(m.expired, id)
	return m.err
}

type mockStore struct {
	saved   map[string]*domain.Session
	expiry  time.Time
	saveErr error
}

func newMockStore() *mockStore {
	return &mockStore{saved: map[string]*domain.Session{}, expiry: time.Now().Add(time.Hour)}
}

func (m *mockStore) Save(_ context.Context, s *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[s.ID] = s
	return nil
}

func (m *mockStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.saved[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	delete(m.saved, id)
	return nil
}

func (m *mockStore) Expiry(string) time.Time {
	return m.expiry
}

type mockBoard struct {
	boards map[string][]domain.Ticket
}

func newMockBoard() *mockBoard {
	return &mockBoard{boards: map[string][]domain.Ticket{}}
}

func (b *mockBoard) Replace(key string, t []domain.Ticket) {
	b.boards[key] = t
}

func (b *mockBoard) Prepend(key string, t domain.Ticket) {
	b.boards[key] = append([]domain.Ticket{t}, b.boards[key]...)
}

func (b *mockBoard) Snapshot(key string) []domain.Ticket {
	return b.boards[key]
}

func (b *mockBoard) Drop(key string) {
	delete(b.boards, key)
}
