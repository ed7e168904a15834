package handler

import (
	"iri-backend/internal/delivery/http/dto"
	"iri-backend/internal/delivery/http/middleware"
	"iri-backend/internal/domain/readiness"
	"iri-backend/internal/pkg/response"
	"iri-backend/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReadinessHandler struct {
	uc usecase.ReadinessUsecase
}

func NewReadinessHandler(uc usecase.ReadinessUsecase) *ReadinessHandler {
	return &ReadinessHandler{uc: uc}
}

func (h *ReadinessHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/calculate", h.Calculate)
	r.Post("/calculate-all-levels", h.CalculateAllLevels)
	r.Get("/all-jobs", h.AllJobs)
	r.Get("/summary", h.Summary)
	r.Get("/scores", h.Scores)
}

func (h *ReadinessHandler) Calculate(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.ReadinessCalculationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	jobRoleID, err := uuid.Parse(req.JobRoleID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job role id", nil, err)
	}

	level := readiness.CompanyLevel(req.CompanyLevel)
	result, err := h.uc.Calculate(c.Context(), userID, jobRoleID, level)
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *ReadinessHandler) CalculateAllLevels(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.ReadinessCalculationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	jobRoleID, err := uuid.Parse(req.JobRoleID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job role id", nil, err)
	}

	results, err := h.uc.CalculateAllLevels(c.Context(), userID, jobRoleID)
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, results)
}

func (h *ReadinessHandler) AllJobs(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	level := readiness.CompanyLevel(c.Query("company_level", string(readiness.LevelStartup)))
	if !readiness.ValidCompanyLevel(level) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid company_level", nil, nil)
	}

	result, err := h.uc.AllJobs(c.Context(), userID, level)
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *ReadinessHandler) Summary(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.Summary(c.Context(), userID)
	if err != nil {
		return mapCommonError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, summary)
}

// Scores serves the persisted snapshot rows.
func (h *ReadinessHandler) Scores(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.Scores(c.Context(), userID)
	if err != nil {
		return mapCommonError(err)
	}

	out := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		out = append(out, fiber.Map{
			"id":               row.ID,
			"job_role_id":      row.JobRoleID,
			"company_level":    row.CompanyLevel,
			"score":            row.Score,
			"verified_score":   row.VerifiedScore,
			"unverified_score": row.UnverifiedScore,
			"pillar_breakdown": row.PillarBreakdown,
			"updated_at":       row.UpdatedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
