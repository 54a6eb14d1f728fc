package main

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"time"

	"coreshop-storefront/internal/config"
	"coreshop-storefront/internal/database"
	"coreshop-storefront/internal/domain"
	"coreshop-storefront/internal/infrastructure/api"
	"coreshop-storefront/internal/infrastructure/payment"
	"coreshop-storefront/internal/infrastructure/session"
	"coreshop-storefront/internal/logging"
	"coreshop-storefront/internal/repo"
	"coreshop-storefront/internal/service"
	"coreshop-storefront/internal/worker"

	"github.com/kelseyhightower/envconfig"
)

type simConfig struct {
	Rounds    int           `envconfig:"ROUNDS" default:"20"`
	Username  string        `envconfig:"USERNAME" required:"true"`
	Password  string        `envconfig:"PASSWORD" required:"true"`
	ProductID int64         `envconfig:"PRODUCT_ID" default:"1"`
	Pause     time.Duration `envconfig:"PAUSE" default:"100ms"`
	// ExpiryWindow is short so abandoned widgets are swept before the run ends.
	ExpiryWindow time.Duration `envconfig:"EXPIRY_WINDOW" default:"1s"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Base().Error("load config", "err", err)
		os.Exit(1)
	}
	var sim simConfig
	if err := envconfig.Process("SIMULATE", &sim); err != nil {
		logging.Base().Error("load simulate config", "err", err)
		os.Exit(1)
	}
	logger := logging.Init("simulate", "")

	ctx := context.Background()

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

	client := api.New(api.Options{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	})
	attempts := repo.NewAttemptRepo(db.DB())
	auth := service.NewAuthService(client, session.NewStore(rdb, cfg.SessionTTL))
	cart := service.NewCartService(client)
	orders := service.NewOrderService(client)

	var (
		checkout service.CheckoutService
		results  service.PaymentResultService
		widget   *payment.SimulatedWidget
	)
	checkout = service.NewCheckoutService(orders, client, attempts, service.CheckoutSettings{
		PublicOrigin:      cfg.PublicOrigin,
		APIBaseURL:        cfg.APIBaseURL,
		ExpirationMinutes: cfg.Checkout.ExpirationMinutes,
		MerchantName:      cfg.Checkout.MerchantName,
		MerchantLogo:      cfg.Checkout.MerchantLogo,
		ButtonColor:       cfg.Checkout.ButtonColor,
	}, func(sessionKey string) payment.Widget {
		widget = payment.NewSimulatedWidget()
		widget.Complete = func(ctx context.Context, purchaseNumber, token string) {
			orderID, err := strconv.ParseInt(purchaseNumber, 10, 64)
			if err != nil {
				logger.Warn("inline completion for unknown purchase", "purchase_number", purchaseNumber)
				return
			}
			out, err := checkout.Complete(ctx, sessionKey, orderID, token)
			if err != nil {
				logger.Warn("inline completion failed", "err", err)
				return
			}
			logger.Info("inline completion", "successful", out.Result.PaymentSuccessful, "message", out.Message)
		}
		widget.Redirect = func(ctx context.Context, params url.Values) {
			res, err := results.Interpret(ctx, sessionKey, params)
			if err != nil {
				logger.Warn("redirect interpretation failed", "err", err)
				return
			}
			logger.Info("redirect result", "order_id", res.OrderID, "successful", res.PaymentSuccessful, "message", res.Message)
		}
		return widget
	})
	results = service.NewPaymentResultService(client, attempts, checkout)

	sess, err := auth.Login(ctx, domain.Credentials{Username: sim.Username, Password: sim.Password})
	if err != nil {
		logger.Error("login", "err", err)
		os.Exit(1)
	}
	ctx = domain.WithSession(ctx, sess)

	logger.Info("starting simulation", "rounds", sim.Rounds)
	tally := map[payment.Outcome]int{}
	for i := 0; i < sim.Rounds; i++ {
		l := logger.With("round", i+1)
		rctx := logging.WithCtx(ctx, l)

		if _, err := cart.AddToCart(rctx, sim.ProductID, 1); err != nil {
			l.Error("add to cart failed", "err", err)
			continue
		}
		order, err := cart.PlaceOrder(rctx)
		if err != nil {
			l.Error("place order failed", "err", err)
			continue
		}

		if _, err := checkout.Begin(rctx, sess.ID, order.ID); err != nil {
			l.Error("checkout failed", "order_id", order.ID, "err", err)
			continue
		}
		outcome := widget.LastOutcome()
		tally[outcome]++
		l.Info("round finished", "order_id", order.ID, "outcome", outcome.String(), "state", checkout.State(sess.ID).String())

		time.Sleep(sim.Pause)
	}
	logger.Info("simulation finished",
		"inline", tally[payment.OutcomeInline],
		"redirect", tally[payment.OutcomeRedirect],
		"abandoned", tally[payment.OutcomeAbandoned],
	)

	// Abandoned widgets left their attempts open; let the sweeper close them.
	time.Sleep(2 * sim.ExpiryWindow)
	sweepCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	worker.NewAttemptExpiryWorker(attempts, sim.ExpiryWindow, time.Second).Run(sweepCtx)

	if err := auth.Logout(ctx, sess.ID); err != nil {
		logger.Warn("logout", "err", err)
	}
}
