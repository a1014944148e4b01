package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nrednav/cuid2"
	"gorm.io/gorm"

	"github.com/Skotchmaster/hr_notify/internal/activation"
	"github.com/Skotchmaster/hr_notify/internal/config"
	"github.com/Skotchmaster/hr_notify/internal/db"
	"github.com/Skotchmaster/hr_notify/internal/hash"
	"github.com/Skotchmaster/hr_notify/internal/httpserver"
	"github.com/Skotchmaster/hr_notify/internal/logging"
	"github.com/Skotchmaster/hr_notify/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/hr_notify/internal/middleware/logging"
	"github.com/Skotchmaster/hr_notify/internal/mykafka"
	"github.com/Skotchmaster/hr_notify/internal/repo"
	"github.com/Skotchmaster/hr_notify/internal/service"
	"github.com/Skotchmaster/hr_notify/internal/tokens"
)

type publisher interface {
	service.ActivationPublisher
	Close() error
}

func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var pub publisher = mykafka.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	accounts := repo.New(gdb)
	issuer := tokens.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	svc := &service.AccountService{
		Repo:          accounts,
		Hasher:        hash.New(cfg.BcryptCost),
		Tokens:        issuer,
		Activation:    activation.NewGenerator(cfg.ActivationTTL),
		Publisher:     pub,
		RequireActive: cfg.RequireActiveLogin,
	}

	e := newEcho(cfg, logger)
	httpserver.Register(e, &httpserver.Deps{
		AccountHandler: &httpserver.AccountHTTP{Svc: svc},
		Auth:           auth.NewBearerAuth(issuer, accounts),
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	var metrics *echo.Echo
	if cfg.MetricsAddr != "" {
		metrics = echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		go func() {
			if err := metrics.Start(cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics_server_error", "error", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdown(logger, srv, metrics, gdb, pub)
	logger.Info("shutdown complete")
}

func newEcho(cfg config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.NewErrorHandler(cfg.IsProduction())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return cuid2.Generate() },
	}))
	if cfg.FrontendHost != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.FrontendHost},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(echoprometheus.NewMiddleware("hr_notify"))
	e.Use(loggingmw.RequestLogger(logger))
	return e
}

func shutdown(logger *slog.Logger, srv *http.Server, metrics *echo.Echo, gdb *gorm.DB, pub publisher) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if metrics != nil {
		if err := metrics.Shutdown(ctx); err != nil {
			logger.Error("metrics_shutdown_error", "error", err)
		}
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
}
