package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/painel/painel/internal/config"
	"github.com/painel/painel/internal/domain/appointment"
	"github.com/painel/painel/internal/domain/outreach"
	"github.com/painel/painel/internal/domain/reconcile"
	"github.com/painel/painel/internal/domain/report"
	"github.com/painel/painel/internal/platform/auditlog"
	"github.com/painel/painel/internal/platform/auth"
	"github.com/painel/painel/internal/platform/db"
	"github.com/painel/painel/internal/platform/middleware"
	"github.com/painel/painel/internal/platform/sheetstore"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "painel-server",
		Short: "Clinic outreach panel API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the panel API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// buildStore picks the configured backing store. The returned cleanup
// releases any pooled resources and is safe to call once.
func buildStore(ctx context.Context, cfg *config.Config) (sheetstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case "csv":
		return sheetstore.NewFileStore(cfg.StorePath), func() {}, nil
	case "postgres":
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := sheetstore.NewPGStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case "memory":
		return sheetstore.NewMemStore(nil, nil), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func buildEngine(cfg *config.Config, store sheetstore.Store, logger zerolog.Logger) *reconcile.Engine {
	repo := appointment.NewSheetRepo(store)
	var ledger reconcile.LedgerStore
	if cfg.LedgerPath != "" {
		ledger = reconcile.NewFileLedger(cfg.LedgerPath)
	}
	return reconcile.NewEngine(repo, ledger, logger)
}

func sessionSecret(cfg *config.Config, logger zerolog.Logger) []byte {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret)
	}
	logger.Warn().Msg("SESSION_SECRET not set; using an insecure development secret")
	return []byte("painel-dev-secret")
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open backing store")
	}
	defer cleanup()
	logger.Info().Str("backend", cfg.StoreBackend).Msg("backing store ready")

	engine := buildEngine(cfg, store, logger)

	var audit auditlog.Sink
	if cfg.AuditLogPath != "" {
		audit = auditlog.NewFileSink(cfg.AuditLogPath)
	} else {
		audit = auditlog.LogSink(logger)
	}

	secret := sessionSecret(cfg, logger)
	creds := auth.Credentials{
		ManagerUser:  cfg.ManagerUser,
		ManagerPass:  cfg.ManagerPass,
		OperatorUser: cfg.OperatorUser,
		OperatorPass: cfg.OperatorPass,
	}

	apptSvc := appointment.NewService(engine)
	outreachSvc := outreach.NewService(engine, audit, cfg.CountryCode)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(auth.Middleware(secret, "/api/v1/login", "/health"))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	apiV1 := e.Group("/api/v1")
	auth.NewHandler(creds, secret, time.Duration(cfg.SessionTTLMin)*time.Minute).RegisterRoutes(apiV1)
	appointment.NewHandler(apptSvc).RegisterRoutes(apiV1)
	reconcile.NewHandler(engine).RegisterRoutes(apiV1)
	outreach.NewHandler(outreachSvc, cfg.OverdueMonths).RegisterRoutes(apiV1)
	report.NewHandler(engine).RegisterRoutes(apiV1)

	// Start server with graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Str("port", cfg.Port).Msg("panel server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
