package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending       OrderStatus = "pending"
	OrderPaid          OrderStatus = "paid"
	OrderCompleted     OrderStatus = "completed"
	OrderCancelled     OrderStatus = "cancelled"
	OrderPaymentFailed OrderStatus = "payment_failed"
)

// Label is the text shown for a status. Unknown statuses are shown as sent.
func (s OrderStatus) Label() string {
	switch OrderStatus(strings.ToLower(string(s))) {
	case OrderPending:
		return "Pending"
	case OrderPaid:
		return "Paid"
	case OrderCompleted:
		return "Completed"
	case OrderCancelled:
		return "Cancelled"
	case OrderPaymentFailed:
		return "Payment failed"
	}
	if s == "" {
		return "Unknown"
	}
	return string(s)
}

type OrderItem struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"productId"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription"`
	ProductSKU         string          `json:"productSku"`
}

type Order struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
	Items     []OrderItem     `json:"items"`
	ItemCount int             `json:"itemCount"`
}

// Payable reports whether the order service still accepts a payment attempt.
func (o Order) Payable() bool {
	switch OrderStatus(strings.ToLower(string(o.Status))) {
	case OrderPending, OrderPaymentFailed:
		return true
	}
	return false
}
