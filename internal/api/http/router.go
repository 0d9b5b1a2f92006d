package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/skill-swap-service/internal/api/http/handlers"
	"github.com/spec-kit/skill-swap-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Swaps          *handlers.SwapsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireUser())
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.Users.UpdateProfile)
	users.Patch("/:id/visibility", cfg.Users.SetVisibility)
	users.Post("/:id/skills/offered", cfg.Users.AddOfferedSkill)
	users.Post("/:id/skills/wanted", cfg.Users.AddWantedSkill)
	users.Delete("/:id/skills/offered/:index", cfg.Users.RemoveOfferedSkill)
	users.Delete("/:id/skills/wanted/:index", cfg.Users.RemoveWantedSkill)
	users.Get("/:id/feedback", cfg.Users.ListFeedback)

	swaps := app.Group("/swaps", cfg.AuthMiddleware.Handle, auth.RequireUser())
	swaps.Post("/", cfg.Swaps.Submit)
	swaps.Get("/", cfg.Swaps.List)
	swaps.Get("/:id", cfg.Swaps.Get)
	swaps.Patch("/:id", cfg.Swaps.Respond)
	swaps.Delete("/:id", cfg.Swaps.Withdraw)
	swaps.Post("/:id/feedback", cfg.Swaps.LeaveFeedback)

	app.Get("/announcements", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Admin.ListAnnouncements)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/ban", cfg.Admin.BanUser)
	admin.Patch("/users/:id/unban", cfg.Admin.UnbanUser)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/swaps", cfg.Admin.ListSwaps)
	admin.Delete("/swaps/:id", cfg.Admin.DeleteSwap)
	admin.Post("/announcements", cfg.Admin.Announce)
}
