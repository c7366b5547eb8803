package handler

import (
	"errors"

	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/mapper"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, mapper.ErrInvalidPayload):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrInvalidMatchMode):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match mode", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrCVNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "CV not found", nil, err)
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Requirement not found", nil, err)
	case errors.Is(err, usecase.ErrRemoteUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
