package handler

import (
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/mapper"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CVHandler struct {
	uc usecase.CVUsecase
}

func NewCVHandler(uc usecase.CVUsecase) *CVHandler {
	return &CVHandler{uc: uc}
}

func (h *CVHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", auth, h.ListMine)
	r.Post("/", auth, h.Create)
	r.Get("/:id", auth, h.Get)
	r.Put("/:id", auth, h.Update)
	r.Delete("/:id", auth, h.Delete)
}

func (h *CVHandler) ListMine(c fiber.Ctx) error {
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
	return response.Paged(c, dto.NewCVResponses(res.Items), pagination(res.PageInfo), "")
}

func (h *CVHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	in, err := mapper.CVFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewCVResponse(out))
}

func (h *CVHandler) Get(c fiber.Ctx) error {
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
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVResponse(out))
}

func (h *CVHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	in, err := mapper.CVFromJSON(c.Body())
	if err != nil {
		return mapUsecaseError(err)
	}
	out, err := h.uc.Update(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCVResponse(out))
}

func (h *CVHandler) Delete(c fiber.Ctx) error {
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
