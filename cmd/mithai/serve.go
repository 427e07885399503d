package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhavalpatel0212-spec/Mithai/internal/catalog"
	"github.com/dhavalpatel0212-spec/Mithai/internal/config"
	"github.com/dhavalpatel0212-spec/Mithai/internal/confirmation"
	h "github.com/dhavalpatel0212-spec/Mithai/internal/http"
	"github.com/dhavalpatel0212-spec/Mithai/internal/session"
	"github.com/dhavalpatel0212-spec/Mithai/internal/telemetry"
	"github.com/dhavalpatel0212-spec/Mithai/pkg/circuitbreaker"
	"github.com/dhavalpatel0212-spec/Mithai/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "mithai"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	shutdownTracer := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.OTelEnabled {
		if shutdownTracer, err = telemetry.SetupTracer(ctx, serviceName, cfg.Env); err != nil {
			return err
		}
		log.Info("tracing enabled")
	}

	menu, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load menu: %w", err)
	}

	sender, closeSender := newSender(cfg, log)
	defer closeSender()

	breaker := circuitbreaker.New[struct{}](circuitbreaker.DefaultSettings("order-confirmation"), log)
	confirmer := confirmation.NewService(
		confirmation.NewBreakerSender(sender, breaker),
		confirmation.WithLogger(log),
	)

	cache, closeCache, err := newSnapshotCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	sessions := session.NewRegistry(session.Config{TTL: cfg.SessionTTL}, cache, confirmer, log)
	defer sessions.Close()

	router := h.NewRouter(h.RouterConfig{
		Catalog:            menu,
		Sessions:           sessions,
		Logger:             log,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		SecureCookies:      cfg.Env == "production",
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("storefront starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}

	log.Info("server exited")
	return nil
}

// newSender publishes to Kafka when brokers are configured and otherwise logs
// the email and simulates delivery.
func newSender(cfg *config.Config, log *zap.Logger) (confirmation.Sender, func()) {
	if len(cfg.KafkaBrokers) > 0 {
		k := confirmation.NewKafkaSender(cfg.ConfirmationTopic, cfg.KafkaBrokers...)
		log.Info("confirmations published to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.ConfirmationTopic))
		return k, func() {
			if err := k.Close(); err != nil {
				log.Warn("kafka writer close failed", zap.Error(err))
			}
		}
	}

	outcome := confirmation.RandomOutcome{FailureRate: cfg.DeliveryFailureRate}
	return confirmation.NewSimulatedSender(cfg.DeliveryDelay, outcome, log), func() {}
}

func newSnapshotCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.SnapshotCache, func(), error) {
	if cfg.RedisAddr == "" {
		return session.NoopCache{}, func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))

	return session.NewRedisCache(redisClient, cfg.SessionTTL), func() { _ = redisClient.Close() }, nil
}
