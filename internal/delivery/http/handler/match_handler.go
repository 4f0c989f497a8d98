package handler

import (
	"errors"

	"study-buddy/internal/delivery/http/dto"
	"study-buddy/internal/delivery/http/middleware"
	"study-buddy/internal/domain/match"
	"study-buddy/internal/pkg/response"
	"study-buddy/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matching usecase.MatchingUsecase
	matches  usecase.MatchUsecase
}

type findMatchesRequest struct {
	Subjects        []string           `json:"subjects"`
	StudyStyle      string             `json:"study_style"`
	Availability    string             `json:"availability"`
	ExperienceLevel string             `json:"experience_level"`
	KnowledgeGaps   []usecase.GapInput `json:"knowledge_gaps"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status"`
}

func NewMatchHandler(matching usecase.MatchingUsecase, matches usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{matching: matching, matches: matches}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("/", h.FindMatches)
	grp.Get("/", h.ListMatches)
	grp.Put("/:id/status", h.UpdateStatus)
}

func (h *MatchHandler) FindMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req findMatchesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.matching.FindMatches(c.Context(), userID, usecase.MatchRequest{
		Subjects:        req.Subjects,
		StudyStyle:      req.StudyStyle,
		Availability:    req.Availability,
		ExperienceLevel: req.ExperienceLevel,
		KnowledgeGaps:   req.KnowledgeGaps,
	})
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.FindMatchesResponse{
		Matches:         make([]dto.MatchResponse, 0, len(res.Matches)),
		SuggestedTopics: make([]dto.TopicSuggestionResponse, 0, len(res.SuggestedTopics)),
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, matchToResponse(m))
	}
	for _, t := range res.SuggestedTopics {
		out.SuggestedTopics = append(out.SuggestedTopics, dto.TopicSuggestionResponse{Topic: t.Topic, Reason: t.Reason})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.matches.ListMatches(c.Context(), userID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	out := dto.MatchListResponse{Matches: make([]dto.MatchResponse, 0, len(items))}
	for _, m := range items {
		out.Matches = append(out.Matches, matchToResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req updateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	status, ok := match.ParseStatus(req.Status)
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown match status", nil, nil)
	}

	updated, err := h.matches.UpdateStatus(c.Context(), userID, matchID, status)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, matchToResponse(updated))
}

func matchToResponse(m match.Match) dto.MatchResponse {
	commonTopics := m.CommonTopics
	if commonTopics == nil {
		commonTopics = []string{}
	}
	activities := m.SuggestedActivities
	if activities == nil {
		activities = []string{}
	}
	return dto.MatchResponse{
		ID:                  m.ID,
		UserID:              m.UserID,
		PartnerID:           m.PartnerID,
		CompatibilityScore:  m.CompatibilityScore,
		CommonTopics:        commonTopics,
		SuggestedActivities: activities,
		Status:              string(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func mapMatchUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, match.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
