package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/finetuner-backend/internal/config"
	"github.com/iliyamo/finetuner-backend/internal/database"
	"github.com/iliyamo/finetuner-backend/internal/handler"
	"github.com/iliyamo/finetuner-backend/internal/logging"
	"github.com/iliyamo/finetuner-backend/internal/router"
	"github.com/iliyamo/finetuner-backend/internal/utils"
)

const shutdownGracePeriod = 10 * time.Second

var signalNotify = signal.Notify

func main() {
	app := kingpin.New("finetuner-backend", "FineTuner API backend")
	envFile := app.Flag("env-file", "Path to an optional .env file").Default(".env").Envar("ENV_FILE").String()

	serveCmd := app.Command("serve", "Run the HTTP API").Default()
	tokenCmd := app.Command("token", "Mint an access and refresh token pair with the configured secret and TTLs")
	subject := tokenCmd.Flag("subject", "Token subject (user id)").Required().String()
	printCmd := app.Command("print-config", "Log the resolved settings with secrets masked")

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Settings are resolved exactly once and passed down from here.
	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(settings.Debug)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch cmd {
	case serveCmd.FullCommand():
		serve(settings, logger)
	case tokenCmd.FullCommand():
		if err := mintToken(os.Stdout, settings, *subject); err != nil {
			logger.Fatal("failed to mint token", zap.Error(err))
		}
	case printCmd.FullCommand():
		logger.Info("resolved settings", zap.String("env_file", *envFile), zap.Object("settings", settings))
	}
}

func serve(settings config.Settings, logger *zap.Logger) {
	logger.Info("settings loaded", zap.Object("settings", settings))

	ctx := context.Background()

	db, err := database.Open(ctx, settings.DatabaseURI())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	health := &handler.HealthHandler{Project: settings.ProjectName, DB: db}

	rdb, err := config.NewRedisClient(ctx, settings)
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", zap.Error(err))
	} else {
		defer func() {
			_ = rdb.Close()
		}()
		health.Redis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = settings.Debug
	router.RegisterRoutes(e, settings, health)

	addr := ":" + settings.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.Bool("debug", settings.Debug))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	shutdown(e, logger)
}

func shutdown(e *echo.Echo, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := e.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

// mintToken writes a fresh access/refresh token pair for subject to w,
// one KEY=VALUE per line, using the configured secret, algorithm and TTLs.
func mintToken(w io.Writer, settings config.Settings, subject string) error {
	pair, err := utils.IssueTokenPair(settings.SecretKey, settings.Algorithm, subject,
		settings.AccessTokenTTL(), settings.RefreshTokenTTL())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "ACCESS_TOKEN=%s\nACCESS_TOKEN_EXPIRES=%s\nREFRESH_TOKEN=%s\nREFRESH_TOKEN_EXPIRES=%s\nREFRESH_TOKEN_SHA256=%s\n",
		pair.Access.Token, pair.Access.Exp.Format(time.RFC3339),
		pair.Refresh.Raw, pair.Refresh.Exp.Format(time.RFC3339),
		pair.RefreshHash)
	return err
}
