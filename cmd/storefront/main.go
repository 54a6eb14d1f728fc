package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coreshop-storefront/internal/config"
	"coreshop-storefront/internal/database"
	"coreshop-storefront/internal/handler"
	"coreshop-storefront/internal/infrastructure/api"
	"coreshop-storefront/internal/infrastructure/payment"
	"coreshop-storefront/internal/infrastructure/session"
	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/repo"
	"coreshop-storefront/internal/service"
	"coreshop-storefront/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Base().Error("load config", "err", err)
		os.Exit(1)
	}

	logger := logging.Init("storefront", cfg.LogFile)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("connect database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Error("migrate database", "err", err)
		os.Exit(1)
	}

	rdb, err := session.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error("connect redis", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	client := api.New(api.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	})
	attempts := repo.NewAttemptRepo(db.DB())
	countdown := worker.NewCountdown(cfg.CountdownInterval)

	orders := service.NewOrderService(client)
	checkout := service.NewCheckoutService(orders, client, attempts, service.CheckoutSettings{
		PublicOrigin:      cfg.PublicOrigin,
		APIBaseURL:        cfg.APIBaseURL,
		ExpirationMinutes: cfg.Checkout.ExpirationMinutes,
		MerchantName:      cfg.Checkout.MerchantName,
		MerchantLogo:      cfg.Checkout.MerchantLogo,
		ButtonColor:       cfg.Checkout.ButtonColor,
	}, func(string) payment.Widget {
		return payment.NewBrowserWidget()
	})

	h := handler.New(handler.Services{
		Auth:      service.NewAuthService(client, sessions),
		Products:  service.NewProductService(client),
		Cart:      service.NewCartService(client),
		Orders:    orders,
		Checkout:  checkout,
		Results:   service.NewPaymentResultService(client, attempts, checkout),
		Warehouse: service.NewWarehouseService(client),
		Support:   service.NewSupportService(client, countdown),
	}, handler.Options{
		CookieName:   cfg.CookieName,
		SecureCookie: cfg.SecureCookie,
		DB:           db,
		Cache:        sessions,
	})

	go countdown.Run(ctx)
	go worker.NewAttemptExpiryWorker(attempts, cfg.Checkout.Expiration(), cfg.AttemptSweepInterval).Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewRouter(h, handler.RouterConfig{AllowedOrigins: cfg.AllowedOrigins}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "err", err)
	}
	logger.Info("storefront stopped")
}
