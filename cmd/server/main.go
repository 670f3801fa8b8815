package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"question_review/internal/api"
	"question_review/internal/app/service"
	"question_review/internal/common/security"
	"question_review/internal/domain/repository"
	"question_review/internal/platform/config"
	"question_review/internal/platform/database"
	"question_review/internal/platform/throttle"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Open database and ensure schema
	db, err := database.Open(config.AppConfig)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	fmt.Println("Database ready.")

	// 4. Login throttle (optional, Redis-backed)
	limiter := throttle.NewNopLimiter()
	if config.AppConfig.RedisAddr != "" {
		limiter, err = throttle.NewRedisLimiter(config.AppConfig)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
	}
	defer limiter.Close()

	// 5. Initialize Repositories
	userRepo := repository.NewSQLUserRepository(db)
	questionRepo := repository.NewSQLQuestionRepository(db)
	feedbackLogRepo := repository.NewSQLFeedbackLogRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, limiter)
	questionService := service.NewQuestionService(questionRepo, userRepo, feedbackLogRepo)
	feedbackLogService := service.NewFeedbackLogService(feedbackLogRepo)

	// 7. Seed default admin account
	if err := authService.EnsureAdmin(ctx, config.AppConfig.AdminUsername, config.AppConfig.AdminPassword); err != nil {
		log.Fatalf("Error seeding admin account: %v", err)
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, questionService, feedbackLogService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
