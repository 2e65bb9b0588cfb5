package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	_ "storefront/docs"
	"storefront/internal/cache"
	"storefront/internal/cart"
	"storefront/internal/payments"
	"storefront/internal/producer"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/token"
	"storefront/pkg/database"
	"storefront/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// @Title Storefront API
// @Version 1.0
// @Description Каталог, корзина и оформление заказов интернет-магазина
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	checks := map[string]router.HealthCheck{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// Redis опционален: без него каталог не кэшируется, а корзины живут в памяти процесса.
	var (
		catalogCache service.CatalogCache
		cartPersist  cart.Persistence = cart.NewMemoryPersistence()
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		catalogCache = cache.NewCatalogCache(redisClient, cfg.Redis.CacheTTL)
		cartPersist = cache.NewCartPersistence(redisClient, cfg.Redis.CartTTL)
		checks["redis"] = redisClient.Ping
	} else {
		log.Warn("redis disabled: catalog cache off, carts kept in memory")
	}

	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderEventProducer(cfg.Kafka.Brokers, cfg.Kafka.OrdersTopic)
		defer p.Close()
		events = p
	} else {
		log.Warn("kafka brokers not configured: order events disabled")
	}

	var pay service.PaymentProvider = payments.Disabled{}
	if cfg.Stripe.Enabled {
		sp, err := payments.NewStripeProvider(payments.StripeProviderConfig{APIKey: cfg.Stripe.APIKey, Log: log})
		if err != nil {
			log.Fatal("failed to init stripe", zap.Error(err))
		}
		pay = sp
	}

	checkout := service.NewCheckoutService(repos, events, pay, catalogCache, service.CheckoutConfig{
		Currency:   cfg.Stripe.Currency,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
		Locale:     cfg.Stripe.Locale,
	}, log)

	svc := router.Services{
		Catalog:  service.NewCatalogService(repos, catalogCache, cfg.Catalog.PlaceholderImage, cfg.Catalog.DefaultPageSize, log),
		Cart:     service.NewCartService(repos, cart.NewStore(cartPersist), checkout, log),
		Checkout: checkout,
		Orders:   service.NewOrderService(repos),
		Admin:    service.NewAdminService(repos, events, catalogCache, log),
	}
	verifier := token.NewHSVerifier(cfg.JWT.AccessSecret, cfg.JWT.Issuer, cfg.JWT.Audience)

	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router.Router(svc, verifier, checks, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()

	// Health server
	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthSrv)

	// Reflection for local debugging
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting HTTP server", zap.String("addr", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("Starting gRPC health server", zap.String("addr", cfg.GRPCPort))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down servers...")
		healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		grpcServer.GracefulStop()
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", zap.Error(err))
	}
	log.Info("Servers stopped gracefully")
}
