package handler

import (
	"context"
	"time"

	"talent-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200; dependency state is reported per component.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			deps[name] = "disabled"
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "down"
			continue
		}
		deps[name] = "up"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"dependencies": deps})
}
