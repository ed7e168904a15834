package handler

import (
	"iri-backend/internal/delivery/http/dto"
	"iri-backend/internal/delivery/http/middleware"
	"iri-backend/internal/pkg/response"
	"iri-backend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/me", h.Me)
	r.Post("/create-profile", h.CreateProfile)
}

// Me returns the caller's profile, creating an empty one on first hit.
func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	view, err := h.uc.GetMyProfile(c.Context(), userID)
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view))
}

// CreateProfile replaces the entire profile in one transaction.
func (h *ProfileHandler) CreateProfile(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.CreateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	p, err := h.uc.Replace(c.Context(), userID, req.ToInput())
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Profile created successfully", fiber.Map{
		"profile_id": p.ID,
	})
}
