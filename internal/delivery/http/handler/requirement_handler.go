package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/user"
	"talent-match/internal/mapper"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RequirementHandler struct {
	uc usecase.RequirementUsecase
}

func NewRequirementHandler(uc usecase.RequirementUsecase) *RequirementHandler {
	return &RequirementHandler{uc: uc}
}

// RegisterRoutes restricts every requirement route to recruiters and admins.
func (h *RequirementHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	recruiter := middleware.RequireRole(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/", auth, recruiter, h.ListMine)
	r.Post("/", auth, recruiter, h.Create)
	r.Get("/:id", auth, recruiter, h.Get)
	r.Put("/:id", auth, recruiter, h.Update)
	r.Delete("/:id", auth, recruiter, h.Delete)
}

func (h *RequirementHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	lp, err := parseListParams(c)
	if err != nil {
		return err
	}
	res, err := h.uc.ListMine(c.Context(), userID, lp)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Paged(c, dto.NewRequirementResponses(res.Items), pagination(res.PageInfo), "")
}

func (h *RequirementHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	in, err := mapper.RequirementFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewRequirementResponse(out))
}

func (h *RequirementHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequirementResponse(out))
}

func (h *RequirementHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := mapper.RequirementFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	out, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequirementResponse(out))
}

func (h *RequirementHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
