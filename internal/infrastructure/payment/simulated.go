package payment

import (
	"context"
	"math/rand/v2"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Outcome int

const (
	OutcomeInline Outcome = iota
	OutcomeRedirect
	OutcomeAbandoned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInline:
		return "inline"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// SimulatedWidget stands in for the browser checkout. On Open it reports one
// of three outcomes: an in-page completion (70%), a server-side redirect with
// a declined payment (20%), or nothing at all because the shopper walked away
// (10%), which leaves the attempt open until it expires.
type SimulatedWidget struct {
	mu   sync.Mutex
	opts *WidgetOptions

	// Complete receives the purchase number and transaction token of an
	// in-page completion.
	Complete func(ctx context.Context, purchaseNumber, transactionToken string)
	// Redirect receives the result page query of a server-side redirect.
	Redirect func(ctx context.Context, params url.Values)

	Delay  time.Duration
	chance func() int
	last   Outcome
}

func NewSimulatedWidget() *SimulatedWidget {
	return &SimulatedWidget{
		Delay:  100 * time.Millisecond,
		chance: func() int { return rand.IntN(100) },
	}
}

func (w *SimulatedWidget) Configure(opts WidgetOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.opts = &opts
	return nil
}

func (w *SimulatedWidget) Open(ctx context.Context) error {
	w.mu.Lock()
	if w.opts == nil {
		w.mu.Unlock()
		return ErrNotConfigured
	}
	opts := *w.opts
	outcome := pick(w.chance())
	w.last = outcome
	w.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(w.Delay):
	}

	switch outcome {
	case OutcomeInline:
		if w.Complete != nil {
			w.Complete(ctx, opts.PurchaseNumber, "tt-"+uuid.NewString())
		}
	case OutcomeRedirect:
		if w.Redirect != nil {
			w.Redirect(ctx, url.Values{
				"orderId":   {opts.PurchaseNumber},
				"sessionId": {opts.CheckoutSessionID},
				"success":   {"false"},
				"status":    {"payment_failed"},
				"error":     {url.PathEscape("Card declined by issuer")},
				"amount":    {opts.AmountText},
			})
		}
	case OutcomeAbandoned:
	}
	return nil
}

// LastOutcome reports what the most recent Open did.
func (w *SimulatedWidget) LastOutcome() Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func pick(chance int) Outcome {
	switch {
	case chance < 70:
		return OutcomeInline
	case chance < 90:
		return OutcomeRedirect
	default:
		return OutcomeAbandoned
	}
}
