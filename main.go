package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"wellbeing/internal"
	"wellbeing/internal/config"
	"wellbeing/internal/container"
	"wellbeing/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger := internal.NewDefaultLogger()
	defer func() { _ = logger.Sync() }()

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Error("[Main] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, appConfig *config.Config, logger *internal.Logger) error {
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(ctx, appConfig, logger)
	if err != nil {
		return err
	}

	// Sweep expired uploads in the background
	go appContainer.Store.RunJanitor(ctx, time.Minute)

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		ops := ui.NewOpsApp(logger)
		go func() {
			if err := ops.Start(":" + appConfig.Profiling.Port); err != nil {
				logger.Warn("[Main] pprof server failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(ui.Config{
		Reports:        appContainer.Reports,
		Store:          appContainer.Store,
		MaxUploadBytes: appConfig.Server.MaxUploadBytes,
		Logger:         logger,
	})

	return server.Run(ctx, ":"+appConfig.Server.Port)
}
