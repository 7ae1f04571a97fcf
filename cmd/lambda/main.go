package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/app"
	"github.com/BuzzLyutic/taskseed-api/internal/config"
)

func main() {
	cfg := config.Load()
	// process memory does not survive between invocations
	if cfg.Backend == config.BackendMemory {
		cfg.Backend = config.BackendDynamoDB
	}

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	stores, closeStores, err := app.NewStoreFactory(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer closeStores()

	lambda.Start(app.NewRouter(cfg.Tables, stores, logger).Lambda)
}
