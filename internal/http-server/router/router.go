package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"image-resizer/internal/config"
	"image-resizer/internal/http-server/handler/image"
	"image-resizer/internal/http-server/middleware"
)

type Handler struct {
	ImageHandler *image.ImageHandler
}

func SetupRouter(cfg *config.Config, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  middleware.AllowOrigin(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.ImageHandler.Health)
		r.Get("/presets", h.ImageHandler.Presets)
		r.Post("/upload", h.ImageHandler.Upload)
		r.Post("/process", h.ImageHandler.Process)
	})

	r.Get("/", h.ImageHandler.APIInfo)

	return r
}
