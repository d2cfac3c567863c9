package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harentsoaR/meditrack-api/internal/config"
	"github.com/harentsoaR/meditrack-api/internal/database"
	"github.com/harentsoaR/meditrack-api/internal/handlers"
	"github.com/harentsoaR/meditrack-api/internal/metrics"
	"github.com/harentsoaR/meditrack-api/internal/middleware"
	"github.com/harentsoaR/meditrack-api/internal/services"
	"github.com/harentsoaR/meditrack-api/internal/store"
	"github.com/harentsoaR/meditrack-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	client, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	// --- Stores and Services ---
	users := store.NewUserStore(db)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set; payment intents will fail")
	}
	payments := services.NewPaymentService(services.NewStripeGateway(cfg.StripeSecretKey), cfg.PaymentCurrency, logger)

	h := handlers.NewHandler(handlers.Deps{
		Camps:         store.NewCampStore(db),
		Users:         users,
		Registrations: store.NewRegistrationStore(db),
		Feedback:      store.NewFeedbackStore(db),
		Tokens:        tokens,
		Payments:      payments,
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Logger:    logger,
		DBTimeout: cfg.DBTimeout,
	})

	metrics.Register()

	// --- Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.Recovery(logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	handlers.RegisterRoutes(r, h, tokens, users)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("MongoDB disconnect failed", zap.Error(err))
	}
}

// newLogger builds the production JSON logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
