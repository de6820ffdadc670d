package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/repositories"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	similarity   services.SimilarityService // nil when the similar-jobs index is disabled
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, similarity services.SimilarityService) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		similarity:   similarity,
	}
}

// HandleGetResult handles GET /analyses/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	switch analysis.Status {
	case models.StatusCompleted:
		response.Result = resultFromAnalysis(analysis)
	case models.StatusFailed:
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

// HandleGetSimilar handles GET /analyses/:id/similar
func (h *ResultHandler) HandleGetSimilar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	if h.similarity == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Similar jobs lookup is not configured",
		})
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 20 {
			limit = parsed
		}
	}

	similar, err := h.similarity.FindSimilar(c.Context(), analysis.JobDescription, analysis.ID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search similar jobs",
		})
	}

	return c.JSON(models.SimilarJobsResponse{
		AnalysisID: analysis.ID.String(),
		Similar:    similar,
	})
}

func resultFromAnalysis(analysis *models.Analysis) *models.JobFitAnalysisResult {
	result := &models.JobFitAnalysisResult{
		KeySkills:           analysis.KeySkills,
		RelevantExperiences: analysis.RelevantExperiences,
		IdentifiedGaps:      analysis.IdentifiedGaps,
		FallbackAnalysis:    analysis.FallbackAnalysis,
		InputSummary:        analysis.InputSummary,
	}

	if analysis.CompatibilityScore != nil {
		result.CompatibilityScore = *analysis.CompatibilityScore
	}
	if analysis.MatchRate != nil {
		result.MatchRate = *analysis.MatchRate
	}
	if analysis.RawAnalysis != nil {
		result.RawAnalysis = *analysis.RawAnalysis
	}
	if analysis.ErrorMessage != nil {
		result.ErrorMessage = *analysis.ErrorMessage
	}

	return result
}
