package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSession is minted per checkout attempt and discarded once the widget opens.
type PaymentSession struct {
	SessionToken string          `json:"sessionToken"`
	MerchantID   string          `json:"merchantId"`
	Amount       decimal.Decimal `json:"amount"`
}

// PaymentResult is built once per payment response and not modified afterwards.
type PaymentResult struct {
	OrderID           int64            `json:"orderId"`
	PreviousStatus    string           `json:"previousStatus"`
	NewStatus         string           `json:"newStatus"`
	PaymentSuccessful bool             `json:"paymentSuccessful"`
	Message           string           `json:"message"`
	TransactionCode   *string          `json:"transactionCode,omitempty"`
	AuthorizationCode *string          `json:"authorizationCode,omitempty"`
	Status            *string          `json:"status,omitempty"`
	CardBrand         *string          `json:"cardBrand,omitempty"`
	CardNumber        *string          `json:"cardNumber,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	ActionCode        *string          `json:"actionCode,omitempty"`
	TraceNumber       *string          `json:"traceNumber,omitempty"`
}

func (r PaymentResult) StatusLabel() string {
	return OrderStatus(r.NewStatus).Label()
}

func (r PaymentResult) CardBrandLabel() string {
	if r.CardBrand == nil || *r.CardBrand == "" {
		return "Card"
	}
	switch strings.ToLower(*r.CardBrand) {
	case "visa":
		return "Visa"
	case "mastercard":
		return "Mastercard"
	case "amex", "american express":
		return "Amex"
	case "diners":
		return "Diners"
	}
	return *r.CardBrand
}

type CheckoutState int

const (
	CheckoutIdle CheckoutState = iota
	CheckoutRequestingToken
	CheckoutWidgetOpen
	CheckoutAuthorizingInline
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutRequestingToken:
		return "requesting_token"
	case CheckoutWidgetOpen:
		return "widget_open"
	case CheckoutAuthorizingInline:
		return "authorizing_inline"
	}
	return fmt.Sprintf("checkout_state(%d)", int(s))
}

// Busy reports whether a request to the order service is outstanding.
func (s CheckoutState) Busy() bool {
	return s == CheckoutRequestingToken || s == CheckoutAuthorizingInline
}

type AttemptStatus string

const (
	AttemptOpen        AttemptStatus = "OPEN"
	AttemptAuthorizing AttemptStatus = "AUTHORIZING"
	AttemptSucceeded   AttemptStatus = "SUCCEEDED"
	AttemptFailed      AttemptStatus = "FAILED"
	AttemptExpired     AttemptStatus = "EXPIRED"
)

// PaymentAttempt is the local record of one widget session, kept to correlate
// a later redirect with the attempt that opened it.
type PaymentAttempt struct {
	ID                uuid.UUID
	SessionKey        string
	OrderID           int64
	CheckoutSessionID string
	Amount            decimal.Decimal
	Status            AttemptStatus
	Successful        *bool
	Message           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CheckoutSessionID is the widget correlation id: creation time in unix
// milliseconds plus a random suffix.
func CheckoutSessionID(now time.Time, suffix string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}
