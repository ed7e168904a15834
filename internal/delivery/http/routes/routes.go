package routes

import (
	"iri-backend/internal/delivery/http/handler"
	v1 "iri-backend/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything route registration needs. The container
// builds one and hands it over.
type Deps = v1.Deps

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(r.deps.DB, r.deps.Cache)
	health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
