package handler

import (
	"net/http"

	"coreshop-storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cartResp struct {
	*domain.Cart
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func newCartResp(cart *domain.Cart) cartResp {
	if cart == nil {
		cart = &domain.Cart{Items: []domain.CartItem{}}
	}
	return cartResp{Cart: cart, Total: cart.Total(), ItemCount: cart.ItemCount()}
}

type addItemReq struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) Cart(c *gin.Context) {
	cart, err := h.svc.Cart.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResp(cart))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.svc.Cart.AddToCart(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResp(cart))
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	productID, err := paramID(c, "productId")
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}

	cart, err := h.svc.Cart.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResp(cart))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, err := paramID(c, "productId")
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}

	cart, err := h.svc.Cart.RemoveItem(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResp(cart))
}
