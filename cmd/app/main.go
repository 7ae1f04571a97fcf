package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskseed-api/internal/app"
	"github.com/BuzzLyutic/taskseed-api/internal/config"
)

func main() {
	// .env необязателен
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем логгер
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Подключаем хранилище
	stores, closeStores, err := app.NewStoreFactory(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("backend", cfg.Backend), zap.Error(err)) // Fatal потому что дальнейшая работа теряет смысл
	}
	defer closeStores()

	router := app.NewRouter(cfg.Tables, stores, logger)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      router.HTTP(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Info("Server stopped successfully!")
}
