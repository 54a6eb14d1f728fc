package handler

import (
	"net/http"

	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type orderResp struct {
	domain.Order
	StatusLabel string `json:"statusLabel"`
	Payable     bool   `json:"payable"`
}

func newOrderResp(o domain.Order) orderResp {
	return orderResp{Order: o, StatusLabel: o.Status.Label(), Payable: o.Payable()}
}

func newOrdersResp(orders []domain.Order) []orderResp {
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResp(o))
	}
	return out
}

type completeReq struct {
	TransactionToken string `json:"transactionToken"`
}

type checkoutResp struct {
	State   string      `json:"state"`
	Busy    bool        `json:"busy"`
	Result  *resultResp `json:"result,omitempty"`
	Message string      `json:"message,omitempty"`
	Orders  []orderResp `json:"orders,omitempty"`
}

func (h *Handler) Orders(c *gin.Context) {
	orders, err := h.svc.Orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrdersResp(orders))
}

// PlaceOrder turns the current cart into an order.
func (h *Handler) PlaceOrder(c *gin.Context) {
	order, err := h.svc.Cart.PlaceOrder(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResp(*order))
}

// Pay opens the checkout widget for an order and returns its configuration.
func (h *Handler) Pay(c *gin.Context) {
	orderID, err := paramID(c, "id")
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}

	opts, err := h.svc.Checkout.Begin(c.Request.Context(), session(c).ID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// CompletePayment receives the widget's in-page completion.
func (h *Handler) CompletePayment(c *gin.Context) {
	orderID, err := paramID(c, "id")
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid completion payload")
		return
	}

	key := session(c).ID
	outcome, err := h.svc.Checkout.Complete(c.Request.Context(), key, orderID, req.TransactionToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutResp(key, outcome))
}

func (h *Handler) CheckoutState(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkoutResp(session(c).ID, nil))
}

func (h *Handler) checkoutResp(key string, outcome *service.CheckoutOutcome) checkoutResp {
	state := h.svc.Checkout.State(key)
	resp := checkoutResp{State: state.String(), Busy: state.Busy()}
	if outcome != nil {
		if outcome.Result != nil {
			r := newResultResp(outcome.Result)
			resp.Result = &r
		}
		resp.Message = outcome.Message
		resp.Orders = newOrdersResp(outcome.Orders)
	}
	return resp
}
