package main

import (
	"context"
	"os/signal"
	"syscall"

	"cartonera/internal/adapter/http/routes"
	"cartonera/internal/config"
	"cartonera/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Cartonera API
// @version         1.0
// @description     Box quoting, orders, payments and check portfolio backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routes.Run(ctx, cfg)
}
