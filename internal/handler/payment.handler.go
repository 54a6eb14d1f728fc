package handler

import (
	"net/http"

	"coreshop-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type resultResp struct {
	*domain.PaymentResult
	StatusLabel    string `json:"statusLabel"`
	CardBrandLabel string `json:"cardBrandLabel"`
}

func newResultResp(r *domain.PaymentResult) resultResp {
	return resultResp{PaymentResult: r, StatusLabel: r.StatusLabel(), CardBrandLabel: r.CardBrandLabel()}
}

// PaymentResponse is the result page the browser lands on after the widget.
func (h *Handler) PaymentResponse(c *gin.Context) {
	result, err := h.svc.Results.Interpret(c.Request.Context(), sessionKey(c), c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newResultResp(result))
}
