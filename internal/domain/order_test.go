package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Label(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   string
	}{
		{OrderPending, "Pending"},
		{"PAID", "Paid"},
		{OrderPaymentFailed, "Payment failed"},
		{"", "Unknown"},
		{"shipped", "shipped"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Label())
	}
}

func TestOrder_Payable(t *testing.T) {
	assert.True(t, Order{Status: OrderPending}.Payable())
	assert.True(t, Order{Status: OrderPaymentFailed}.Payable())
	assert.False(t, Order{Status: OrderCompleted}.Payable())
	assert.False(t, Order{Status: OrderCancelled}.Payable())
}

func TestCheckoutState(t *testing.T) {
	assert.True(t, CheckoutRequestingToken.Busy())
	assert.True(t, CheckoutAuthorizingInline.Busy())
	assert.False(t, CheckoutIdle.Busy())
	assert.False(t, CheckoutWidgetOpen.Busy())
	assert.Equal(t, "widget_open", CheckoutWidgetOpen.String())
}

func TestPaymentResult_CardBrandLabel(t *testing.T) {
	brand := "American Express"
	assert.Equal(t, "Amex", PaymentResult{CardBrand: &brand}.CardBrandLabel())
	assert.Equal(t, "Card", PaymentResult{}.CardBrandLabel())
}
