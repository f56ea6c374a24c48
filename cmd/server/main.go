package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/duvindu/saffron/internal"
	"github.com/duvindu/saffron/internal/billing"
	"github.com/duvindu/saffron/internal/cart"
	"github.com/duvindu/saffron/internal/currency"
	"github.com/duvindu/saffron/internal/email"
	"github.com/duvindu/saffron/internal/events"
	"github.com/duvindu/saffron/internal/handler"
	"github.com/duvindu/saffron/internal/handler/admin"
	"github.com/duvindu/saffron/internal/handler/storefront"
	"github.com/duvindu/saffron/internal/kv"
	"github.com/duvindu/saffron/internal/middleware"
	"github.com/duvindu/saffron/internal/postgres"
	"github.com/duvindu/saffron/internal/router"
	"github.com/duvindu/saffron/internal/routes"
	"github.com/duvindu/saffron/internal/service"
	"github.com/duvindu/saffron/internal/shipping"
	"github.com/duvindu/saffron/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// pgx pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Stores
	productStore := postgres.NewProductStore(pool)
	orderStore := postgres.NewOrderStore(pool)
	messageStore := postgres.NewMessageStore(pool)
	customerStore := postgres.NewCustomerStore(pool)

	// Durable key-value state: carts and the currency selection survive
	// restarts through here.
	kvStore := kv.NewPostgres(pool)
	sessions := cart.NewSessions(kvStore, logger)
	converter := currency.New(kvStore, logger)

	// Billing: real Stripe when a key is configured, mock for local
	// development.
	var billingProvider billing.Provider
	if cfg.Stripe.SecretKey != "" && !strings.Contains(cfg.Stripe.SecretKey, "your_key_here") {
		stripeProvider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Stripe provider: %w", err)
		}
		logger.Info("Stripe billing provider initialized", "test_mode", stripeProvider.IsTestMode())
		billingProvider = stripeProvider
	} else {
		logger.Warn("No Stripe key configured, using mock billing provider")
		billingProvider = billing.NewMockProvider()
	}

	shippingProvider := shipping.NewFlatRateProvider([]shipping.Rate{
		{ServiceName: "Standard Shipping", ServiceCode: "standard", CostCents: 795, DaysMin: 5, DaysMax: 7},
		{ServiceName: "Express Shipping", ServiceCode: "express", CostCents: 1495, DaysMin: 2, DaysMax: 3},
	})

	// Email
	var sender email.Sender
	if cfg.Email.PostmarkToken != "" {
		sender = email.NewPostmarkSender(cfg.Email.PostmarkToken)
	} else {
		logger.Warn("No Postmark token configured, using mock email sender")
		sender = email.NewMockSender()
	}
	from := fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.From)
	emailService := email.NewService(sender, from, cfg.Email.FromName, cfg.BaseURL, logger)

	// Order events: NATS when configured, in-process otherwise.
	var bus events.Bus
	if cfg.Events.URL != "" {
		natsBus, err := events.NewNATSBus(cfg.Events.URL, cfg.Events.Subject, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		logger.Info("Connected to NATS", "url", cfg.Events.URL)
		bus = natsBus
	} else {
		bus = events.NewMemoryBus()
	}
	defer bus.Close()

	// Confirmation email worker
	confirmationWorker := worker.New(orderStore, emailService, bus, worker.Config{}, logger)
	stopWorker, err := confirmationWorker.Start()
	if err != nil {
		return fmt.Errorf("failed to start order worker: %w", err)
	}
	defer stopWorker()

	// Services
	checkoutService := service.NewCheckoutService(orderStore, customerStore, billingProvider, shippingProvider, bus, logger)
	messageService := service.NewMessageService(messageStore, emailService, logger)

	// Templates
	logger.Info("Loading templates...")
	renderer, err := handler.NewRenderer("web/templates")
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	secure := cfg.Env == "prod"

	storefrontDeps := routes.StorefrontDeps{
		HomeHandler:     storefront.NewHomeHandler(productStore, converter, renderer, logger),
		ProductHandler:  storefront.NewProductHandler(productStore, converter, renderer, logger),
		CartHandler:     storefront.NewCartHandler(sessions, productStore, converter, renderer, logger, secure),
		CurrencyHandler: storefront.NewCurrencyHandler(converter, logger),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, sessions, converter, renderer, logger, cfg.Stripe.PublishableKey),
		TrackingHandler: storefront.NewTrackingHandler(checkoutService, converter, renderer, logger),
		ContactHandler:  storefront.NewContactHandler(messageService, converter, renderer, logger),
	}

	adminDeps := routes.AdminDeps{
		AuthHandler:      admin.NewAuthHandler(cfg.AdminToken, secure, renderer, logger),
		DashboardHandler: admin.NewDashboardHandler(orderStore, messageStore, renderer, logger),
		ProductHandler:   admin.NewProductHandler(productStore, renderer, logger),
		OrderHandler:     admin.NewOrderHandler(orderStore, renderer, logger),
		MessageHandler:   admin.NewMessageHandler(messageStore, renderer, logger),
		CustomerHandler:  admin.NewCustomerHandler(customerStore, renderer, logger),
	}

	// Middleware
	metrics := middleware.NewMetrics("saffron")
	defaultRateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer defaultRateLimiter.Stop()
	loginRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())
	defer loginRateLimiter.Stop()

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		defaultRateLimiter.Middleware,
		router.Logger(logger),
	)

	r.Static("/static/", "./web/static")

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterAdminRoutes(r, adminDeps,
		middleware.RequireAdmin(cfg.AdminToken),
		loginRateLimiter.Middleware,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
