package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/user"
	"talent-match/internal/mapper"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes keeps reads public; writes need a recruiter or admin token.
func (h *JobHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	writer := middleware.RequireRole(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/", h.List)
	r.Get("/mine", auth, h.ListMine)
	r.Get("/:id", h.Get)
	r.Post("/", auth, writer, h.Create)
	r.Put("/:id", auth, writer, h.Update)
	r.Patch("/:id/title", auth, writer, h.Rename)
	r.Delete("/:id", auth, writer, h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	return h.list(c, uuid.Nil)
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	return h.list(c, userID)
}

func (h *JobHandler) list(c fiber.Ctx, owner uuid.UUID) error {
	lp, err := parseListParams(c)
	if err != nil {
		return err
	}
	res, err := h.uc.List(c.Context(), usecase.JobListParams{
		ListParams: lp,
		Status:     c.Query("status"),
		CreatedBy:  owner,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Paged(c, dto.NewJobResponses(res.Items), pagination(res.PageInfo), "")
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	in, err := mapper.JobFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	j, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := mapper.JobFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	j, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Rename(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.RenameJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	j, err := h.uc.Rename(c.Context(), userID, id, req.Title)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
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
