package handler

import (
	"time"

	"coreshop-storefront/internal/handler/middleware"
	"coreshop-storefront/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.HeaderSessionID, middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/payment-response", middleware.OptionalSession(h.svc.Auth, h.opts.CookieName), h.PaymentResponse)

	pub := r.Group("/api")
	pub.POST("/login", h.Login)

	authed := r.Group("/api", middleware.RequireSession(h.svc.Auth, h.opts.CookieName))
	{
		authed.POST("/logout", h.Logout)
		authed.GET("/profile", h.Profile)
		authed.GET("/products", h.Products)

		authed.GET("/cart", h.Cart)
		authed.POST("/cart/items", h.AddToCart)
		authed.PUT("/cart/items/:productId", h.UpdateQuantity)
		authed.DELETE("/cart/items/:productId", h.RemoveFromCart)

		authed.GET("/orders", h.Orders)
		authed.POST("/orders", h.PlaceOrder)
		authed.POST("/orders/:id/pay", h.Pay)
		authed.POST("/orders/:id/pay/complete", h.CompletePayment)
		authed.GET("/checkout", h.CheckoutState)

		authed.GET("/warehouse/summary", h.WarehouseSummary)
		authed.GET("/warehouse/products", h.WarehouseProducts)
		authed.GET("/warehouse/categories", h.WarehouseCategories)
		authed.GET("/warehouse/products/:id/history", h.ProductHistory)

		authed.GET("/support/tickets", h.Tickets)
		authed.POST("/support/tickets", h.CreateTicket)
		authed.GET("/support/tickets/live", h.LiveTickets)
		authed.GET("/support/tickets/:id", h.Ticket)
	}

	return r
}
