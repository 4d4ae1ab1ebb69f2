package handlers

import (
	"GophSign/internal/config"
	"GophSign/internal/middleware"
	"GophSign/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	documentService *service.DocumentService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	documentHandler := NewDocumentHandler(documentService, logger, config)

	// Auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)
		r.Get("/session", userHandler.Session)
	})

	// Document routes
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", documentHandler.Create)
		r.Get("/", documentHandler.List)
		r.Get("/{id}", documentHandler.Get)
		r.Delete("/{id}", documentHandler.Delete)
		r.Post("/{id}/sign", documentHandler.Sign)
	})

	// Файлы документов и подписей, только владельцу
	r.Get("/uploads/{key}", documentHandler.Blob)

	return &Handler{Router: r}
}
