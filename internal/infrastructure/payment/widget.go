package payment

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	ChannelWeb               = "web"
	DefaultExpirationMinutes = 20
)

var (
	ErrNotConfigured = errors.New("checkout widget is not configured")
	ErrMissingToken  = errors.New("checkout widget needs a session token")
)

// WidgetOptions is everything the embedded checkout needs to collect a payment.
type WidgetOptions struct {
	SessionToken      string          `json:"sessiontoken"`
	Channel           string          `json:"channel"`
	MerchantID        string          `json:"merchantid"`
	PurchaseNumber    string          `json:"purchasenumber"`
	Amount            decimal.Decimal `json:"-"`
	AmountText        string          `json:"amount"`
	ExpirationMinutes string          `json:"expirationminutes"`
	TimeoutURL        string          `json:"timeouturl"`
	MerchantLogo      string          `json:"merchantlogo"`
	MerchantName      string          `json:"merchantname"`
	FormButtonColor   string          `json:"formbuttoncolor"`
	// Action is the result page the network redirects the browser to.
	Action string `json:"action"`
	// CallbackURL is invoked by the payment network itself, out of band.
	CallbackURL       string `json:"callbackurl"`
	CheckoutSessionID string `json:"checkoutSessionId"`
}

func (o WidgetOptions) Validate() error {
	if o.SessionToken == "" {
		return ErrMissingToken
	}
	return nil
}

// Widget is the opaque embedded checkout. Its outcome arrives later through
// either an in-page completion or a server-side redirect.
type Widget interface {
	Configure(opts WidgetOptions) error
	Open(ctx context.Context) error
}

// BrowserWidget keeps the configuration the page script hands to the real
// checkout; opening it only records that the page may now show it.
type BrowserWidget struct {
	mu     sync.RWMutex
	opts   *WidgetOptions
	opened bool
}

func NewBrowserWidget() *BrowserWidget {
	return &BrowserWidget{}
}

func (w *BrowserWidget) Configure(opts WidgetOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opts = &opts
	w.opened = false
	return nil
}

func (w *BrowserWidget) Open(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.opts == nil {
		return ErrNotConfigured
	}
	w.opened = true
	return nil
}

// Options returns the configuration once the widget has been opened.
func (w *BrowserWidget) Options() (WidgetOptions, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.opts == nil || !w.opened {
		return WidgetOptions{}, false
	}
	return *w.opts, true
}
