package routes

import (
	"net/http"

	"talent-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Jobs         *handler.JobHandler
	CVs          *handler.CVHandler
	Requirements *handler.RequirementHandler
	Match        *handler.MatchHandler
}

type Registry struct {
	handlers Handlers
	auth     fiber.Handler
	metrics  http.Handler
}

func NewRegistry(h Handlers, auth fiber.Handler, metrics http.Handler) *Registry {
	return &Registry{handlers: h, auth: auth, metrics: metrics}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
	if r.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.metrics))
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	v1 := app.Group("/api").Group("/v1")
	h := r.handlers

	if h.Auth != nil {
		h.Auth.RegisterRoutes(v1.Group("/auth"))
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(v1.Group("/users"), r.auth)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(v1, r.auth)
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(v1.Group("/jobs"), r.auth)
	}
	if h.CVs != nil {
		h.CVs.RegisterRoutes(v1.Group("/cvs"), r.auth)
	}
	if h.Requirements != nil {
		h.Requirements.RegisterRoutes(v1.Group("/requirements"), r.auth)
	}
}
