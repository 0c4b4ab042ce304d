package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fernwave/chat-service/internal/api/http/handlers"
	"github.com/fernwave/chat-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Gateway *auth.Gateway
	Auth    *handlers.AuthHandler
	Chat    *handlers.ChatHandler
	Pages   *handlers.PagesHandler
	Health  *handlers.HealthHandler
}

// RegisterRoutes wires HTTP routes. The gateway runs before every route so
// no page or API logic is reachable without an access decision.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gateway.Handle)

	app.Get("/", cfg.Pages.Home)
	app.Get("/chat/:id", cfg.Pages.Chat)
	app.Get("/login", cfg.Pages.Login)
	app.Get("/register", cfg.Pages.Register)

	// Form posts land on the page paths; the JSON API mirrors them below.
	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)

	authGroup := app.Group("/api/auth")
	authGroup.Get("/guest", cfg.Auth.Guest)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/health", cfg.Health.Ready)

	app.Post("/api/chat", auth.RequireClaim(), cfg.Chat.Send)
	app.Get("/api/chat/:id", auth.RequireClaim(), cfg.Chat.Get)
	app.Delete("/api/chat/:id", auth.RequireClaim(), cfg.Chat.Delete)
	app.Get("/api/history", auth.RequireClaim(), cfg.Chat.History)
}
