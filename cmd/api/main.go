package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "quote_rollup/docs"
	"quote_rollup/internal/adapter/http/routes"
	"quote_rollup/internal/app"
	"quote_rollup/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Quote Rollup API
// @version         1.0
// @description     Quotes and opportunities with the Won quote total rollup, backed by DynamoDB or a SQL store.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @host localhost:8080

// @BasePath  /v1

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	c, err := app.Build(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to start", "error", err)
	}
	defer c.Close(context.Background())

	if err := routes.Run(ctx, c); err != nil {
		logg.Error("failed to serve", "error", err)
	}
}
