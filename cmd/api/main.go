package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpapi"
	"storefront/internal/mailer"
	"storefront/internal/orders"
	"storefront/internal/paystack"
	"storefront/internal/telemetry"
	"storefront/internal/users"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx := context.Background()

	// OpenTelemetry
	tp, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("error shutting down tracer", zap.Error(err))
		}
	}()

	mp, err := telemetry.InitMetrics(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logger.Error("error shutting down meter", zap.Error(err))
		}
	}()

	// PostgreSQL
	dbPool, err := initDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer dbPool.Close()

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	logger.Info("connected to redis")

	// Repositories
	productRepo := catalog.NewProductRepository(dbPool)
	userRepo := users.NewUserRepository(dbPool)
	orderRepo := orders.NewOrderRepository(dbPool)
	cartRepo := cart.NewCartRepository(redisClient)

	// External collaborators
	gateway := paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.PaystackCallbackURL, logger)
	notifier := mailer.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)

	// Use cases
	productUseCase := catalog.NewProductUseCase(productRepo, logger)
	userUseCase := users.NewUserUseCase(userRepo, logger)
	cartUseCase := cart.NewCartUseCase(cartRepo, productRepo, logger)
	orderUseCase := orders.NewOrderUseCase(orderRepo, productRepo, userRepo, gateway, notifier, logger)

	// Router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		httpapi.OK(c, http.StatusOK, "", gin.H{
			"status":  "healthy",
			"service": cfg.ServiceName,
		})
	})

	catalog.NewHandler(productUseCase).RegisterRoutes(r)
	users.NewHandler(userUseCase).RegisterRoutes(r)
	cart.NewHandler(cartUseCase).RegisterRoutes(r)
	orders.NewHandler(orderUseCase).RegisterRoutes(r)
	mailer.NewHandler(notifier, cfg.SMTPUser).RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("http server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.InitialFields = map[string]interface{}{
		"service": cfg.ServiceName,
	}
	return zapCfg.Build()
}

func initDB(ctx context.Context, cfg config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 25
	poolCfg.MinConns = 5
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	// Wait for database to be ready
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			logger.Info("connected to database")
			return pool, nil
		}
		logger.Info("waiting for database...", zap.Int("attempt", i+1))
		time.Sleep(1 * time.Second)
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to database after 30 attempts")
}
