package domain

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// GatewayCallback is one of the payment network outcome shapes the storefront
// receives: InlineCompletion, RedirectOutcome or LegacyCallback.
type GatewayCallback interface {
	Validate() error
	isGatewayCallback()
}

// InlineCompletion is reported by the widget's in-page completion callback.
type InlineCompletion struct {
	OrderID           int64           `json:"-"`
	CheckoutSessionID string          `json:"-"`
	TransactionToken  string          `json:"transactionToken"`
	PurchaseNumber    string          `json:"purchaseNumber"`
	Amount            decimal.Decimal `json:"amount"`
}

func (InlineCompletion) isGatewayCallback() {}

func (c InlineCompletion) Validate() error {
	if c.OrderID <= 0 {
		return ErrMissingOrderID
	}
	if c.TransactionToken == "" {
		return ErrMissingTransaction
	}
	return nil
}

// RedirectOutcome is attached by the backend when it redirects the browser to
// the result page after processing the transaction itself.
type RedirectOutcome struct {
	OrderID           int64
	SessionID         *string
	Success           *string
	Status            *string
	Error             *string
	AuthorizationCode *string
	CardBrand         *string
	CardNumber        *string
	Amount            *string
	TransactionCode   *string
	ActionCode        *string
	TraceNumber       *string
}

func (RedirectOutcome) isGatewayCallback() {}

func (c RedirectOutcome) Validate() error {
	if c.OrderID <= 0 {
		return ErrMissingOrderID
	}
	return nil
}

// LegacyCallback is the full gateway field set the network used to append when
// redirecting straight to the result page. Absent fields serialize as null.
type LegacyCallback struct {
	OrderID            int64   `json:"-"`
	SessionID          *string `json:"-"`
	TransactionToken   *string `json:"transactionToken"`
	TransactionCode    *string `json:"transactionCode"`
	MerchantID         *string `json:"merchantId"`
	PurchaseNumber     string  `json:"purchaseNumber"`
	Amount             *string `json:"amount"`
	Currency           *string `json:"currency"`
	AuthorizationCode  *string `json:"authorizationCode"`
	ActionCode         *string `json:"actionCode"`
	ActionDescription  *string `json:"actionDescription"`
	ErrorCode          *string `json:"errorCode"`
	ErrorMessage       *string `json:"errorMessage"`
	TraceNumber        *string `json:"traceNumber"`
	TransactionDate    *string `json:"transactionDate"`
	TransactionTime    *string `json:"transactionTime"`
	CardType           *string `json:"cardType"`
	CardBrand          *string `json:"cardBrand"`
	CardNumber         *string `json:"cardNumber"`
	InstallmentsNumber *string `json:"installmentsNumber"`
	SignatureValue     *string `json:"signatureValue"`
}

func (LegacyCallback) isGatewayCallback() {}

func (c LegacyCallback) Validate() error {
	if c.OrderID <= 0 {
		return ErrMissingOrderID
	}
	return nil
}

// ParseGatewayCallback classifies result page query parameters. A success or
// status parameter means the backend already processed the payment; that shape
// wins over the legacy field set when both are present.
func ParseGatewayCallback(params url.Values) (GatewayCallback, error) {
	rawOrderID := params.Get("orderId")
	if rawOrderID == "" {
		return nil, ErrMissingOrderID
	}
	orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
	if err != nil {
		return nil, ErrInvalidOrderID
	}

	var cb GatewayCallback
	if params.Has("success") || params.Has("status") {
		cb = RedirectOutcome{
			OrderID:           orderID,
			SessionID:         param(params, "sessionId"),
			Success:           present(params, "success"),
			Status:            present(params, "status"),
			Error:             param(params, "error"),
			AuthorizationCode: param(params, "authorizationCode"),
			CardBrand:         param(params, "cardBrand"),
			CardNumber:        param(params, "cardNumber"),
			Amount:            param(params, "amount"),
			TransactionCode:   param(params, "transactionCode"),
			ActionCode:        param(params, "actionCode"),
			TraceNumber:       param(params, "traceNumber"),
		}
	} else {
		purchaseNumber := rawOrderID
		if p := param(params, "purchaseNumber"); p != nil {
			purchaseNumber = *p
		}
		cb = LegacyCallback{
			OrderID:            orderID,
			SessionID:          param(params, "sessionId"),
			TransactionToken:   param(params, "transactionToken"),
			TransactionCode:    param(params, "transactionCode"),
			MerchantID:         param(params, "merchantId"),
			PurchaseNumber:     purchaseNumber,
			Amount:             param(params, "amount"),
			Currency:           param(params, "currency"),
			AuthorizationCode:  param(params, "authorizationCode"),
			ActionCode:         param(params, "actionCode"),
			ActionDescription:  param(params, "actionDescription"),
			ErrorCode:          param(params, "errorCode"),
			ErrorMessage:       param(params, "errorMessage"),
			TraceNumber:        param(params, "traceNumber"),
			TransactionDate:    param(params, "transactionDate"),
			TransactionTime:    param(params, "transactionTime"),
			CardType:           param(params, "cardType"),
			CardBrand:          param(params, "cardBrand", "brand"),
			CardNumber:         param(params, "cardNumber", "card"),
			InstallmentsNumber: param(params, "installmentsNumber"),
			SignatureValue:     param(params, "signatureValue"),
		}
	}
	if err := cb.Validate(); err != nil {
		return nil, err
	}
	return cb, nil
}

// param returns the first non-empty value among keys, or nil.
func param(params url.Values, keys ...string) *string {
	for _, k := range keys {
		if v := params.Get(k); v != "" {
			return &v
		}
	}
	return nil
}

// present returns the value of key when it is in the query at all, even empty.
func present(params url.Values, key string) *string {
	if !params.Has(key) {
		return nil
	}
	v := params.Get(key)
	return &v
}
