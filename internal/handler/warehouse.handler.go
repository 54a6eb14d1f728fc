package handler

import (
	"net/http"

	"coreshop-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) WarehouseSummary(c *gin.Context) {
	summary, err := h.svc.Warehouse.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) WarehouseProducts(c *gin.Context) {
	filter := domain.DefaultWarehouseFilter()
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, "invalid filter")
		return
	}
	if filter.SortOrder != domain.SortAsc && filter.SortOrder != domain.SortDesc {
		badRequest(c, "sortOrder must be asc or desc")
		return
	}

	products, err := h.svc.Warehouse.Products(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) WarehouseCategories(c *gin.Context) {
	cats, err := h.svc.Warehouse.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) ProductHistory(c *gin.Context) {
	productID, err := paramID(c, "id")
	if err != nil {
		badRequest(c, "invalid product id")
		return
	}

	history, err := h.svc.Warehouse.History(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
