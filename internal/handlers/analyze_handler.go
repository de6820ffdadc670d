package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/repositories"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

type AnalyzeHandler struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	worker       services.Worker
}

func NewAnalyzeHandler(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		worker:       worker,
	}
}

// HandleAnalyze handles POST /analyses
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.JobTitle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_title is required",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(resumeDocID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	analysis := &models.Analysis{
		ID:               uuid.New(),
		JobTitle:         req.JobTitle,
		JobDescription:   req.JobDescription,
		ResumeDocumentID: resumeDocID,
		Status:           models.StatusQueued,
		Debug:            req.Debug,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	coverLetterID, ok := h.optionalDocumentID(c, req.CoverLetterDocumentID, "cover_letter_document_id")
	if !ok {
		return nil
	}
	analysis.CoverLetterDocumentID = coverLetterID

	referenceID, ok := h.optionalDocumentID(c, req.ReferenceDocumentID, "reference_document_id")
	if !ok {
		return nil
	}
	analysis.ReferenceDocumentID = referenceID

	if err := h.analysisRepo.Create(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// optionalDocumentID validates an optional document reference. It writes the
// error response itself and reports ok=false when the request is invalid.
func (h *AnalyzeHandler) optionalDocumentID(c *fiber.Ctx, raw, fieldName string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid " + fieldName + " format",
		})
		return nil, false
	}

	if _, err := h.docRepo.FindByID(id); err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fieldName + " does not reference an existing document",
		})
		return nil, false
	}

	return &id, true
}
