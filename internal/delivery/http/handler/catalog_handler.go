package handler

import (
	"iri-backend/internal/pkg/response"
	"iri-backend/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// CatalogHandler serves the public reference data: pillars, skills and
// job roles. No auth required.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/jobs", h.JobRoles)
	r.Get("/pillars", h.Pillars)
	r.Get("/skills", h.Skills)
}

func (h *CatalogHandler) JobRoles(c fiber.Ctx) error {
	roles, err := h.uc.JobRoles(c.Context())
	if err != nil {
		return mapCommonError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, roles)
}

func (h *CatalogHandler) Pillars(c fiber.Ctx) error {
	pillars, err := h.uc.Pillars(c.Context())
	if err != nil {
		return mapCommonError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, pillars)
}

func (h *CatalogHandler) Skills(c fiber.Ctx) error {
	skills, err := h.uc.Skills(c.Context())
	if err != nil {
		return mapCommonError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, skills)
}
