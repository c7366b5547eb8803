package handler

import (
	"fmt"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/domain/user"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc              usecase.MatchingUsecase
	defaultMinScore int
}

func NewMatchHandler(uc usecase.MatchingUsecase, defaultMinScore int) *MatchHandler {
	return &MatchHandler{uc: uc, defaultMinScore: defaultMinScore}
}

// RegisterRoutes mounts the ranking endpoints under the api router; every route needs auth.
func (h *MatchHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	recruiter := middleware.RequireRole(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/cvs/:id/matches", auth, h.JobsForCV)
	r.Get("/jobs/:job_id/match/:cv_id", auth, h.ScoreJobForCV)
	r.Get("/requirements/:id/matches/export", auth, recruiter, h.ExportCandidates)
	r.Get("/requirements/:id/matches", auth, recruiter, h.CandidatesForRequirement)
}

func (h *MatchHandler) JobsForCV(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	cvID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	params, err := parseMatchParams(c, h.defaultMinScore)
	if err != nil {
		return err
	}

	page, err := h.uc.RankJobsForCV(c.Context(), userID, cvID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Paged(c, page.Items, response.Pagination{
		Page: page.Page, Limit: page.Limit, Total: page.Total, TotalPages: page.TotalPages,
	}, page.Source)
}

func (h *MatchHandler) CandidatesForRequirement(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	reqID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	params, err := parseMatchParams(c, h.defaultMinScore)
	if err != nil {
		return err
	}

	page, err := h.uc.RankCandidatesForRequirement(c.Context(), userID, reqID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Paged(c, page.Items, response.Pagination{
		Page: page.Page, Limit: page.Limit, Total: page.Total, TotalPages: page.TotalPages,
	}, page.Source)
}

func (h *MatchHandler) ScoreJobForCV(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := parseUUIDParam(c, "job_id")
	if err != nil {
		return err
	}
	cvID, err := parseUUIDParam(c, "cv_id")
	if err != nil {
		return err
	}

	item, err := h.uc.ScoreJobForCV(c.Context(), userID, jobID, cvID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, item)
}

func (h *MatchHandler) ExportCandidates(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	reqID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	params, err := parseMatchParams(c, h.defaultMinScore)
	if err != nil {
		return err
	}

	b, err := h.uc.ExportCandidateMatches(c.Context(), userID, reqID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Attachment(c, response.ContentTypeXLSX, fmt.Sprintf("candidates-%s.xlsx", reqID), b)
}
