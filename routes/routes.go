package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-platform/docs"
	"github.com/Dosada05/tournament-platform/handlers"
	"github.com/Dosada05/tournament-platform/middleware"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Registration *handlers.RegistrationHandler
	Applications *handlers.ApplicationHandler
	Review       *handlers.ReviewHandler
	Users        *handlers.UserHandler
	Health       *handlers.HealthHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Timeout(30 * time.Second))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Registration-Flow"},
		ExposedHeaders:   []string{"X-Registration-Flow"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)

		r.Route("/register/organizer", func(r chi.Router) {
			r.Get("/", h.Registration.Status)
			r.Post("/", h.Registration.Complete)
			r.Delete("/", h.Registration.Cancel)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", h.Users.Me)
		r.Patch("/me", h.Users.UpdateMe)
		r.Get("/dashboard", h.Users.Dashboard)

		r.Route("/organizer-applications", func(r chi.Router) {
			r.Post("/", h.Applications.Apply)
			r.Get("/mine", h.Applications.ListMine)
			r.Post("/{id}/attachment", h.Applications.UploadAttachment)
		})

		// Роль администратора проверяется в сервисе по данным из БД.
		r.Route("/admin/organizer-applications", func(r chi.Router) {
			r.Get("/", h.Review.List)
			r.Post("/{id}/approve", h.Review.Approve)
			r.Post("/{id}/reject", h.Review.Reject)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
