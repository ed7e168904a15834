package handler

import (
	"errors"

	"iri-backend/internal/delivery/http/middleware"
	"iri-backend/internal/pkg/response"
	"iri-backend/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// authedUser pulls the authenticated user from the request context.
func authedUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

// mapCommonError handles the sentinels shared by the profile-facing
// usecases. Handler-specific mappings run before falling back here.
func mapCommonError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found. Please create your profile first.", nil, err)
	case errors.Is(err, usecase.ErrItemNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Item not found", nil, err)
	case errors.Is(err, usecase.ErrJobRoleNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job role not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidTarget):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
