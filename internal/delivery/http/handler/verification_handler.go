package handler

import (
	"errors"

	"iri-backend/internal/delivery/http/dto"
	"iri-backend/internal/delivery/http/middleware"
	"iri-backend/internal/domain/verification"
	"iri-backend/internal/pkg/response"
	"iri-backend/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type VerificationHandler struct {
	uc usecase.VerificationUsecase
}

func NewVerificationHandler(uc usecase.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{uc: uc}
}

func (h *VerificationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/status", h.Status)
	r.Post("/self-verification", h.SelfVerification)
	r.Post("/submit-quiz", h.SubmitQuiz)
	r.Post("/referral-verification", h.ReferralVerification)
	r.Post("/link-verification", h.LinkVerification)
}

func (h *VerificationHandler) SelfVerification(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.SelfVerificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	target, err := parseTarget(req.ItemType, req.ItemID)
	if err != nil {
		return err
	}

	result, err := h.uc.RequestSelf(c.Context(), userID, target)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, result)
}

func (h *VerificationHandler) SubmitQuiz(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.QuizSubmissionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	verificationID, err := uuid.Parse(req.VerificationID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.SubmitQuiz(c.Context(), userID, verificationID, req.Answers)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func (h *VerificationHandler) ReferralVerification(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.ReferralVerificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	target, err := parseTarget(req.ItemType, req.ItemID)
	if err != nil {
		return err
	}

	result, err := h.uc.RequestReferral(c.Context(), userID, target, req.ReferralName, req.ReferralEmail, req.Message)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, result)
}

func (h *VerificationHandler) LinkVerification(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	var req dto.LinkVerificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", problems, nil)
	}

	target, err := parseTarget(req.ItemType, req.ItemID)
	if err != nil {
		return err
	}

	result, err := h.uc.RequestLink(c.Context(), userID, target, req.EvidenceURL)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, result)
}

func (h *VerificationHandler) Status(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.Status(c.Context(), userID)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"total_verifications":  summary.Total,
		"pending":              summary.Pending,
		"approved":             summary.Approved,
		"rejected":             summary.Rejected,
		"by_method":            summary.ByMethod,
		"recent_verifications": dto.NewVerificationResponses(summary.Recent),
	})
}

func (h *VerificationHandler) List(c fiber.Ctx) error {
	userID, err := authedUser(c)
	if err != nil {
		return err
	}

	reqs, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapVerificationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewVerificationResponses(reqs))
}

func parseTarget(itemType, itemID string) (verification.Target, error) {
	tt := verification.TargetType(itemType)
	if !verification.ValidTargetType(tt) {
		return verification.Target{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid item type", nil, nil)
	}
	id, err := uuid.Parse(itemID)
	if err != nil {
		return verification.Target{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid item id", nil, err)
	}
	return verification.Target{Type: tt, ID: id}, nil
}

func mapVerificationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrVerificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Verification request not found or already completed", nil, err)
	case errors.Is(err, usecase.ErrVerificationExpired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Verification has expired. Please request a new one.", nil, err)
	case errors.Is(err, usecase.ErrEmailDeliveryFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Failed to send verification email. Please try again.", nil, err)
	default:
		return mapCommonError(err)
	}
}
