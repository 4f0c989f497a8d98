package handler

import (
	"errors"

	"study-buddy/internal/delivery/http/dto"
	"study-buddy/internal/delivery/http/middleware"
	"study-buddy/internal/domain/user"
	"study-buddy/internal/pkg/response"
	"study-buddy/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profiles   usecase.ProfileUsecase
	blindSpots usecase.BlindSpotUsecase
}

type updateProfileRequest struct {
	StudyStyle      string   `json:"study_style"`
	Availability    string   `json:"availability"`
	ExperienceLevel string   `json:"experience_level"`
	InterestTags    []string `json:"interest_tags"`
}

type replaceBlindSpotsRequest struct {
	BlindSpots []usecase.GapInput `json:"blind_spots"`
}

func NewProfileHandler(profiles usecase.ProfileUsecase, blindSpots usecase.BlindSpotUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, blindSpots: blindSpots}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me")
	grp.Get("/profile", h.GetProfile)
	grp.Put("/profile", h.UpdateProfile)
	grp.Get("/blind-spots", h.ListBlindSpots)
	grp.Put("/blind-spots", h.ReplaceBlindSpots)
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileToResponse(p))
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.profiles.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		StudyStyle:      req.StudyStyle,
		Availability:    req.Availability,
		ExperienceLevel: req.ExperienceLevel,
		InterestTags:    req.InterestTags,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, profileToResponse(p))
}

func (h *ProfileHandler) ListBlindSpots(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.blindSpots.ListBlindSpots(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, blindSpotsToResponse(items))
}

func (h *ProfileHandler) ReplaceBlindSpots(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req replaceBlindSpotsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.blindSpots.ReplaceBlindSpots(c.Context(), userID, req.BlindSpots)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, blindSpotsToResponse(items))
}

func profileToResponse(p user.Profile) dto.ProfileResponse {
	tags := p.InterestTags
	if tags == nil {
		tags = []string{}
	}
	return dto.ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		StudyStyle:      p.StudyStyle,
		Availability:    p.Availability,
		ExperienceLevel: p.ExperienceLevel,
		InterestTags:    tags,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func blindSpotsToResponse(items []user.BlindSpot) []dto.BlindSpotResponse {
	out := make([]dto.BlindSpotResponse, 0, len(items))
	for _, bs := range items {
		out = append(out, dto.BlindSpotResponse{
			ID:         bs.ID,
			Topic:      bs.Topic,
			Confidence: bs.Confidence,
			CreatedAt:  bs.CreatedAt,
		})
	}
	return out
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
