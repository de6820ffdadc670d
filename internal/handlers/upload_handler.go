package handlers

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/repositories"
	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/services"
)

// Career document slots accepted by the upload endpoint.
var documentFields = []string{"resume", "cover_letter", "reference"}

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	extractor      services.ExtractorService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	extractor services.ExtractorService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		extractor:      extractor,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /documents. Each uploaded file runs through the
// extraction pipeline before the document record is stored.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File

	var responses []models.UploadResponse

	for _, fieldName := range documentFields {
		fieldFiles, exists := files[fieldName]
		if !exists || len(fieldFiles) == 0 {
			continue
		}
		file := fieldFiles[0]

		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s file too large. Max size: %d bytes", fieldName, h.maxFileSize),
			})
		}

		response, status, err := h.processUpload(c, file, fieldName)
		if err != nil {
			return c.Status(status).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		responses = append(responses, *response)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'resume', 'cover_letter' and/or 'reference' as PDF or TXT files.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) processUpload(c *fiber.Ctx, file *multipart.FileHeader, fileType string) (*models.UploadResponse, int, error) {
	data, err := h.storageService.ReadFile(file)
	if err != nil {
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to read %s file: %v", fileType, err)
	}

	filename, filePath, err := h.storageService.SaveFile(file, fileType)
	if err != nil {
		return nil, fiber.StatusBadRequest, fmt.Errorf("failed to save %s file: %v", fileType, err)
	}

	// Extraction is total: it always yields text, possibly a placeholder.
	extraction := h.extractor.Extract(c.Context(), services.ExtractionInput{
		FileName:   file.Filename,
		MimeType:   file.Header.Get("Content-Type"),
		Data:       data,
		UploadedAt: time.Now(),
	})

	doc := models.Document{
		ID:                     uuid.New(),
		Filename:               filename,
		OriginalFileName:       file.Filename,
		FileType:               fileType,
		MimeType:               file.Header.Get("Content-Type"),
		SizeBytes:              file.Size,
		FilePath:               filePath,
		ExtractedText:          extraction.Text,
		ExtractionMethod:       extraction.Method,
		HasBinaryContamination: extraction.Quality.HasBinaryContamination,
		LetterRatio:            extraction.Quality.LetterRatio,
		TextLength:             extraction.Quality.Length,
		ExtractionWarning:      extraction.Warning,
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.StatusInternalServerError, fmt.Errorf("failed to save %s document record: %v", fileType, err)
	}

	return &models.UploadResponse{
		ID:               doc.ID.String(),
		Filename:         doc.Filename,
		OriginalName:     doc.OriginalFileName,
		FileType:         doc.FileType,
		ExtractionMethod: string(doc.ExtractionMethod),
		TextLength:       doc.TextLength,
		Warning:          doc.ExtractionWarning,
	}, 0, nil
}
