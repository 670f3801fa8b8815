package api

import (
	"net/http"
	"time"

	"question_review/internal/api/handler"
	"question_review/internal/app/service"
	"question_review/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	questionService *service.QuestionService,
	feedbackLogService *service.FeedbackLogService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The review frontend is served from a different origin; allow all.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// Verifies a bearer token if present and puts claims in context; route
	// groups decide whether a verified identity is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		questionHandler := handler.NewQuestionHandler(questionService)
		v1.Route("/questions", questionHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(authService)
		v1.Route("/users", userHandler.RegisterRoutes)

		feedbackLogHandler := handler.NewFeedbackLogHandler(feedbackLogService)
		v1.Route("/feedback-log", feedbackLogHandler.RegisterRoutes)
	})

	return r
}
