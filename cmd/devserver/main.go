package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/studybuddy/internal/config"
	"github.com/yourusername/studybuddy/internal/devserver"
	"github.com/yourusername/studybuddy/internal/middleware"
	"github.com/yourusername/studybuddy/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Devserver.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Гарантируем наличие локального пользователя-владельца
	if err := devserver.EnsureDevUser(db); err != nil {
		log.Printf("Failed to seed dev user: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории и обработчик
	questionRepo := devserver.NewQuestionRepo(db)
	bookRepo := devserver.NewBookRepo(db)
	buddyRepo := devserver.NewBuddyRepo(db)

	// Rate limiting генерации уроков включается при доступном Redis
	var limiter *middleware.RateLimiter
	if cfg.Redis.Addr != "" || len(cfg.Redis.Addrs) > 0 {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("WARNING: Redis недоступен, rate limiting выключен: %v", err)
		} else {
			limiter = middleware.NewRateLimiter(redisClient)
		}
	}

	handler := devserver.NewHandler(questionRepo, bookRepo, buddyRepo, cfg.Devserver.PlaceholderQuestions)
	router := devserver.NewRouter(handler, limiter)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Devserver.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Devserver.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Devserver.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting devserver on port %s", cfg.Devserver.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнала остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down devserver...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Devserver exited properly")
}
