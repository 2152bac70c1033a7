package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gdp/rpg-companion/internal/api/handlers"
	"github.com/gdp/rpg-companion/internal/api/middleware"
	"github.com/gdp/rpg-companion/internal/config"
	"github.com/gdp/rpg-companion/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	playerHandler := handlers.NewPlayerHandler(services.Roster)
	noteHandler := handlers.NewNoteHandler(services.Notes)
	diceHandler := handlers.NewDiceHandler(services.Dice)

	r.Route("/api", func(r chi.Router) {
		// Every /api route sees the session when the cookie is valid;
		// anonymous requests pass through and the route decides.
		r.Use(middleware.Session(services.Auth))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/login-player", authHandler.LoginPlayer)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Get("/check-session", authHandler.CheckSession)
		})

		r.Route("/players", func(r chi.Router) {
			// Master-only roster management
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireMaster)
				r.Get("/", playerHandler.List)
				r.Post("/", playerHandler.Create)
				r.Put("/{id}", playerHandler.Update)
				r.Delete("/{id}", playerHandler.Delete)
			})

			// Owner master or the character itself
			r.Get("/{id}", playerHandler.Get)
			r.Put("/{id}/status", playerHandler.UpdateStatus)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(middleware.RequireMaster)
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Get("/{id}", noteHandler.Get)
			r.Put("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})

		r.Route("/dice", func(r chi.Router) {
			r.Post("/roll", diceHandler.Roll)
			r.Get("/history", diceHandler.History)
		})
	})

	return r
}
