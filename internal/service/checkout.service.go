package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/infrastructure/payment"
	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/repo"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutSettings are the fixed values every widget is opened with.
type CheckoutSettings struct {
	PublicOrigin      string
	APIBaseURL        string
	ExpirationMinutes int
	MerchantName      string
	MerchantLogo      string
	ButtonColor       string
}

// CheckoutOutcome is what an in-page completion leaves behind: the API's
// verdict and the refreshed order list.
type CheckoutOutcome struct {
	Result  *domain.PaymentResult
	Message string
	Orders  []domain.Order
}

const (
	msgPaymentProcessed = "Payment processed successfully"
	msgPaymentRejected  = "The payment was not authorized"
	msgAuthorizeFailed  = "Could not authorize the payment"
)

var (
	errNoPaymentSession = errors.New("payment token response carried no session")
	errNoPaymentResult  = errors.New("authorization response carried no result")
)

type openAttempt struct {
	orderID           int64
	checkoutSessionID string
	amount            decimal.Decimal
}

// Orchestrator drives one payment attempt at a time for one session.
type Orchestrator struct {
	mu         sync.Mutex
	state      domain.CheckoutState
	attempt    *openAttempt
	sessionKey string
	widget     payment.Widget
	deps       *checkoutDeps
}

type checkoutDeps struct {
	orders   OrderAPI
	attempts repo.AttemptRepo
	settings CheckoutSettings
	now      func() time.Time
	suffix   func() string
}

func (o *Orchestrator) State() domain.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Begin requests a payment session for order and opens the widget with it.
// A new attempt replaces an open widget but never a request in flight.
func (o *Orchestrator) Begin(ctx context.Context, order domain.Order) (payment.WidgetOptions, error) {
	l := logging.FromCtx(ctx)

	o.mu.Lock()
	if o.state.Busy() {
		o.mu.Unlock()
		return payment.WidgetOptions{}, domain.ErrCheckoutInProgress
	}
	if !order.Payable() {
		o.mu.Unlock()
		return payment.WidgetOptions{}, domain.ErrOrderNotPayable
	}
	o.state = domain.CheckoutRequestingToken
	o.attempt = nil
	o.mu.Unlock()

	// Every exit before the widget takes over, panics included, goes back to Idle.
	handedOff := false
	defer func() {
		if !handedOff {
			o.toIdle()
		}
	}()

	ps, err := o.deps.orders.PaymentToken(ctx, order.ID)
	if err == nil && ps == nil {
		err = errNoPaymentSession
	}
	if err != nil {
		l.Error("payment token request failed", "order_id", order.ID, "err", err)
		return payment.WidgetOptions{}, fmt.Errorf("%w: %w", domain.ErrPaymentStart, err)
	}

	now := o.deps.now()
	attempt := &openAttempt{
		orderID:           order.ID,
		checkoutSessionID: domain.CheckoutSessionID(now, o.deps.suffix()),
		amount:            ps.Amount,
	}
	opts := o.widgetOptions(ps, attempt)
	if err := o.widget.Configure(opts); err != nil {
		return payment.WidgetOptions{}, fmt.Errorf("%w: %w", domain.ErrPaymentStart, err)
	}

	if o.deps.attempts != nil {
		err := o.deps.attempts.Create(ctx, &domain.PaymentAttempt{
			ID:                uuid.New(),
			SessionKey:        o.sessionKey,
			OrderID:           order.ID,
			CheckoutSessionID: attempt.checkoutSessionID,
			Amount:            ps.Amount,
			Status:            domain.AttemptOpen,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			l.Error("record payment attempt", "checkout_session_id", attempt.checkoutSessionID, "err", err)
		}
	}

	o.mu.Lock()
	o.state = domain.CheckoutWidgetOpen
	o.attempt = attempt
	o.mu.Unlock()
	handedOff = true

	if err := o.widget.Open(ctx); err != nil {
		o.release(attempt.checkoutSessionID)
		return payment.WidgetOptions{}, fmt.Errorf("%w: %w", domain.ErrPaymentStart, err)
	}
	l.Info("checkout widget open", "order_id", order.ID, "checkout_session_id", attempt.checkoutSessionID)
	return opts, nil
}

// Complete forwards the widget's in-page completion to the API for
// authorization. It is only accepted while the widget is open for orderID.
func (o *Orchestrator) Complete(ctx context.Context, orderID int64, transactionToken string) (*CheckoutOutcome, error) {
	l := logging.FromCtx(ctx)

	o.mu.Lock()
	if o.state != domain.CheckoutWidgetOpen || o.attempt == nil || o.attempt.orderID != orderID {
		o.mu.Unlock()
		return nil, domain.ErrNoOpenCheckout
	}
	attempt := *o.attempt
	completion := domain.InlineCompletion{
		OrderID:           attempt.orderID,
		CheckoutSessionID: attempt.checkoutSessionID,
		TransactionToken:  transactionToken,
		PurchaseNumber:    strconv.FormatInt(attempt.orderID, 10),
		Amount:            attempt.amount,
	}
	if err := completion.Validate(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.state = domain.CheckoutAuthorizingInline
	o.mu.Unlock()
	defer o.release(attempt.checkoutSessionID)

	if o.deps.attempts != nil {
		if err := o.deps.attempts.MarkAuthorizing(ctx, attempt.checkoutSessionID); err != nil {
			l.Error("mark attempt authorizing", "checkout_session_id", attempt.checkoutSessionID, "err", err)
		}
	}

	result, err := o.deps.orders.AuthorizePayment(ctx, completion)
	if err == nil && result == nil {
		err = errNoPaymentResult
	}
	if err != nil {
		o.resolve(ctx, attempt.checkoutSessionID, false, msgAuthorizeFailed)
		l.Error("payment authorization failed", "order_id", attempt.orderID, "err", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthorization, err)
	}

	outcome := &CheckoutOutcome{Result: result, Message: result.Message}
	if outcome.Message == "" {
		outcome.Message = msgPaymentRejected
		if result.PaymentSuccessful {
			outcome.Message = msgPaymentProcessed
		}
	}
	o.resolve(ctx, attempt.checkoutSessionID, result.PaymentSuccessful, outcome.Message)
	l.Info("payment authorized", "order_id", attempt.orderID, "successful", result.PaymentSuccessful)

	orders, err := o.deps.orders.Orders(ctx)
	if err != nil {
		l.Warn("refresh orders after payment", "err", err)
	}
	outcome.Orders = orders
	return outcome, nil
}

// Reset closes an open widget; the result page does this once a redirect
// arrives. Requests in flight are left to finish on their own.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != domain.CheckoutWidgetOpen {
		return
	}
	o.state = domain.CheckoutIdle
	o.attempt = nil
}

func (o *Orchestrator) toIdle() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = domain.CheckoutIdle
	o.attempt = nil
}

// release returns to Idle unless a newer attempt has replaced checkoutSessionID.
func (o *Orchestrator) release(checkoutSessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempt != nil && o.attempt.checkoutSessionID != checkoutSessionID {
		return
	}
	o.state = domain.CheckoutIdle
	o.attempt = nil
}

func (o *Orchestrator) resolve(ctx context.Context, checkoutSessionID string, successful bool, message string) {
	if o.deps.attempts == nil {
		return
	}
	if _, err := o.deps.attempts.Resolve(ctx, o.sessionKey, checkoutSessionID, successful, message); err != nil {
		logging.FromCtx(ctx).Error("resolve payment attempt", "checkout_session_id", checkoutSessionID, "err", err)
	}
}

func (o *Orchestrator) widgetOptions(ps *domain.PaymentSession, a *openAttempt) payment.WidgetOptions {
	s := o.deps.settings
	orderID := strconv.FormatInt(a.orderID, 10)
	amountText := ps.Amount.StringFixed(2)

	logo := s.MerchantLogo
	if logo == "" {
		logo = s.PublicOrigin
	}
	expiration := s.ExpirationMinutes
	if expiration <= 0 {
		expiration = payment.DefaultExpirationMinutes
	}

	action := url.Values{"orderId": {orderID}, "sessionId": {a.checkoutSessionID}}
	callback := url.Values{"orderId": {orderID}, "sessionId": {a.checkoutSessionID}, "amount": {amountText}}

	return payment.WidgetOptions{
		SessionToken:      ps.SessionToken,
		Channel:           payment.ChannelWeb,
		MerchantID:        ps.MerchantID,
		PurchaseNumber:    orderID,
		Amount:            ps.Amount,
		AmountText:        amountText,
		ExpirationMinutes: strconv.Itoa(expiration),
		TimeoutURL:        s.PublicOrigin + "/home/orders",
		MerchantLogo:      logo,
		MerchantName:      s.MerchantName,
		FormButtonColor:   s.ButtonColor,
		Action:            s.PublicOrigin + "/payment-response?" + action.Encode(),
		CallbackURL:       s.APIBaseURL + "/orders/niubiz-callback?" + callback.Encode(),
		CheckoutSessionID: a.checkoutSessionID,
	}
}

// CheckoutService keeps one orchestrator per session, the way each browser
// tab used to hold its own.
type CheckoutService interface {
	Begin(ctx context.Context, sessionKey string, orderID int64) (payment.WidgetOptions, error)
	Complete(ctx context.Context, sessionKey string, orderID int64, transactionToken string) (*CheckoutOutcome, error)
	State(sessionKey string) domain.CheckoutState
	Reset(sessionKey string)
	Forget(sessionKey string)
}

type checkoutService struct {
	mu        sync.Mutex
	sessions  map[string]*Orchestrator
	orders    OrderService
	newWidget func(sessionKey string) payment.Widget
	deps      *checkoutDeps
}

func NewCheckoutService(
	orders OrderService,
	api OrderAPI,
	attempts repo.AttemptRepo,
	settings CheckoutSettings,
	newWidget func(sessionKey string) payment.Widget,
) CheckoutService {
	return &checkoutService{
		sessions:  make(map[string]*Orchestrator),
		orders:    orders,
		newWidget: newWidget,
		deps: &checkoutDeps{
			orders:   api,
			attempts: attempts,
			settings: settings,
			now:      time.Now,
			suffix:   randomSuffix,
		},
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func (s *checkoutService) orchestrator(sessionKey string) *Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.sessions[sessionKey]
	if !ok {
		o = &Orchestrator{sessionKey: sessionKey, widget: s.newWidget(sessionKey), deps: s.deps}
		s.sessions[sessionKey] = o
	}
	return o
}

func (s *checkoutService) Begin(ctx context.Context, sessionKey string, orderID int64) (payment.WidgetOptions, error) {
	o := s.orchestrator(sessionKey)
	if o.State().Busy() {
		return payment.WidgetOptions{}, domain.ErrCheckoutInProgress
	}
	order, err := s.orders.Find(ctx, orderID)
	if err != nil {
		return payment.WidgetOptions{}, err
	}
	return o.Begin(ctx, *order)
}

func (s *checkoutService) Complete(ctx context.Context, sessionKey string, orderID int64, transactionToken string) (*CheckoutOutcome, error) {
	return s.orchestrator(sessionKey).Complete(ctx, orderID, transactionToken)
}

func (s *checkoutService) State(sessionKey string) domain.CheckoutState {
	s.mu.Lock()
	o, ok := s.sessions[sessionKey]
	s.mu.Unlock()
	if !ok {
		return domain.CheckoutIdle
	}
	return o.State()
}

func (s *checkoutService) Reset(sessionKey string) {
	s.mu.Lock()
	o, ok := s.sessions[sessionKey]
	s.mu.Unlock()
	if ok {
		o.Reset()
	}
}

// Forget drops the session's orchestrator, on logout.
func (s *checkoutService) Forget(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey)
}
