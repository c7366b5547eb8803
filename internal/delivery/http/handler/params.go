package handler

import (
	"strconv"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return id, nil
}

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func parseListParams(c fiber.Ctx) (usecase.ListParams, error) {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return usecase.ListParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return usecase.ListParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return usecase.ListParams{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Page:   page,
		Limit:  limit,
	}, nil
}

func parseMatchParams(c fiber.Ctx, defaultMinScore int) (usecase.MatchParams, error) {
	page, err := parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return usecase.MatchParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 10)
	if err != nil {
		return usecase.MatchParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	minScore, err := parseQueryIntStrict(c, "min_score", defaultMinScore)
	if err != nil {
		return usecase.MatchParams{}, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return usecase.MatchParams{Page: page, Limit: limit, MinScore: minScore, Mode: c.Query("mode")}, nil
}

func pagination(p usecase.PageInfo) response.Pagination {
	return response.Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}
