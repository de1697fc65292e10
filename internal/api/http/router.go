package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/academic-admin-service/internal/api/http/handlers"
	"github.com/spec-kit/academic-admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Rooms           *handlers.RoomsHandler
	Terms           *handlers.TermsHandler
	Departments     *handlers.DepartmentsHandler
	Users           *handlers.UsersHandler
	ActorMiddleware *auth.ActorMiddleware
}

// RegisterRoutes wires HTTP routes. Reads are open to the gateway; mutations
// require a resolved actor, and term/directory administration additionally
// requires the Administrator role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	rooms := app.Group("/rooms")
	rooms.Get("/", cfg.Rooms.ListRooms)
	rooms.Get("/:code", cfg.Rooms.GetRoom)
	roomMutations := rooms.Group("", cfg.ActorMiddleware.Handle)
	roomMutations.Post("/", cfg.Rooms.CreateRoom)
	roomMutations.Patch("/:code", cfg.Rooms.UpdateRoom)
	roomMutations.Delete("/:code", cfg.Rooms.DeleteRoom)

	terms := app.Group("/terms")
	terms.Get("/", cfg.Terms.ListTerms)
	terms.Get("/active", cfg.Terms.GetActiveTerm)
	termAdmin := terms.Group("", cfg.ActorMiddleware.Handle, auth.RequireAdministrator())
	termAdmin.Post("/", cfg.Terms.CreateTerm)
	termAdmin.Post("/:id/activate", cfg.Terms.ActivateTerm)

	departments := app.Group("/departments")
	departments.Get("/", cfg.Departments.ListDepartments)
	departments.Get("/:id", cfg.Departments.GetDepartment)
	departments.Post("/", cfg.ActorMiddleware.Handle, auth.RequireAdministrator(), cfg.Departments.CreateDepartment)

	users := app.Group("/users", cfg.ActorMiddleware.Handle, auth.RequireAdministrator())
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Post("/", cfg.Users.CreateUser)
}
