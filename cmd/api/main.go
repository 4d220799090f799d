package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orderhub/orderhub-backend/api/routes"
	authsvc "github.com/orderhub/orderhub-backend/internal/auth"
	"github.com/orderhub/orderhub-backend/internal/catalog"
	customersvc "github.com/orderhub/orderhub-backend/internal/customers"
	"github.com/orderhub/orderhub-backend/internal/mailer"
	ordersvc "github.com/orderhub/orderhub-backend/internal/orders"
	pricetablesvc "github.com/orderhub/orderhub-backend/internal/pricetables"
	"github.com/orderhub/orderhub-backend/internal/pricing"
	sellersvc "github.com/orderhub/orderhub-backend/internal/sellers"
	"github.com/orderhub/orderhub-backend/internal/whatsapp"
	"github.com/orderhub/orderhub-backend/pkg/config"
	"github.com/orderhub/orderhub-backend/pkg/db"
	"github.com/orderhub/orderhub-backend/pkg/logger"
	"github.com/orderhub/orderhub-backend/pkg/metrics"
	"github.com/orderhub/orderhub-backend/pkg/migrate"
	"github.com/orderhub/orderhub-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	resolver, err := pricing.NewResolver(pricing.NewRepository(gormDB))
	if err != nil {
		fatal(logg, "failed to create price resolver", err)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB))
	if err != nil {
		fatal(logg, "failed to create catalog service", err)
	}

	sellerService, err := sellersvc.NewService(sellersvc.NewRepository(gormDB))
	if err != nil {
		fatal(logg, "failed to create seller service", err)
	}

	customerRepo := customersvc.NewRepository(gormDB)
	customerService, err := customersvc.NewService(customerRepo)
	if err != nil {
		fatal(logg, "failed to create customer service", err)
	}

	priceTableService, err := pricetablesvc.NewService(pricetablesvc.NewRepository(gormDB), catalog.NewRepository(gormDB), customerRepo)
	if err != nil {
		fatal(logg, "failed to create price table service", err)
	}

	orderService, err := ordersvc.NewService(ordersvc.NewRepository(gormDB), resolver, dbClient)
	if err != nil {
		fatal(logg, "failed to create order service", err)
	}

	resetMailer, err := mailer.New(cfg.SMTP, logg)
	if err != nil {
		fatal(logg, "failed to create mailer", err)
	}

	authService, err := authsvc.NewService(authsvc.NewRepository(gormDB), resetMailer, logg, cfg.JWT, cfg.Password, cfg.PasswordReset.TokenTTL)
	if err != nil {
		fatal(logg, "failed to create auth service", err)
	}

	whatsappClient, err := whatsapp.NewClient(cfg.WhatsApp)
	if err != nil {
		fatal(logg, "failed to create whatsapp client", err)
	}

	messagingMetrics := metrics.NewMessagingMetrics(prometheus.DefaultRegisterer)
	whatsappService, err := whatsapp.NewService(whatsappClient, logg, messagingMetrics, cfg.WhatsApp)
	if err != nil {
		fatal(logg, "failed to create whatsapp service", err)
	}
	whatsappService.Start(context.Background())
	defer whatsappService.Close()

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Auth:        authService,
		Sellers:     sellerService,
		Customers:   customerService,
		Catalog:     catalogService,
		PriceTables: priceTableService,
		Orders:      orderService,
		Pricing:     resolver,
		WhatsApp:    whatsappService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
