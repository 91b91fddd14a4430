package api

import (
	"net/http"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/api/handler"
	"github.com/Parth2500/Jwt-Auth/internal/app/service"
	"github.com/Parth2500/Jwt-Auth/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	APIPrefix   string
	CORSOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	authService *service.AuthService,
	userService *service.UserService,
	tokens *security.TokenIssuer,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/api-docs", handler.ServeOpenAPI)

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	r.Route(prefix, func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Group(authHandler.RegisterRoutes)

		userHandler := handler.NewUserHandler(userService, tokens)
		api.Group(userHandler.RegisterRoutes)
	})

	return r
}
