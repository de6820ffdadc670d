package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

type BriefingHandler struct {
	briefingService services.BriefingService
}

func NewBriefingHandler(briefingService services.BriefingService) *BriefingHandler {
	return &BriefingHandler{briefingService: briefingService}
}

// HandleGenerateBriefing handles POST /briefings
func (h *BriefingHandler) HandleGenerateBriefing(c *fiber.Ctx) error {
	var req models.BriefingRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CompanyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_name is required",
		})
	}

	// Generate never fails: a degraded briefing still comes back 200.
	briefing := h.briefingService.Generate(c.Context(), req.CompanyName, req.JobTitle)

	return c.JSON(briefing)
}
