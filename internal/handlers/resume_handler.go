package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mockmate/interview-api/internal/auth"
	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

const maxResumeSize = 10 * 1024 * 1024 // 10MB

type ResumeHandler struct {
	storage    services.StorageService
	pdfParser  services.PDFParserService
	analyzer   services.ResumeService
	resumeRepo repositories.ResumeRepository
	validate   *validator.Validate
}

func NewResumeHandler(
	storage services.StorageService,
	pdfParser services.PDFParserService,
	analyzer services.ResumeService,
	resumeRepo repositories.ResumeRepository,
	validate *validator.Validate,
) *ResumeHandler {
	return &ResumeHandler{
		storage:    storage,
		pdfParser:  pdfParser,
		analyzer:   analyzer,
		resumeRepo: resumeRepo,
		validate:   validate,
	}
}

// HandleUploadResume handles POST /resume/upload. The PDF is stored, parsed
// and analyzed in one pass; the extracted text comes back to the client so
// it can be attached to question generation or saved.
func (h *ResumeHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF file with key 'file'",
		})
	}

	if file.Size > maxResumeSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File too large. Maximum size is 10MB",
		})
	}

	filename, filePath, err := h.storage.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	resumeText, err := h.pdfParser.ExtractText(filePath)
	if err != nil {
		if delErr := h.storage.DeleteFile(filename); delErr != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", filename, delErr)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Could not extract text from the PDF",
		})
	}

	analysis := h.analyzer.AnalyzeResume(c.Context(), resumeText)

	return c.JSON(models.ResumeUploadResponse{
		Filename:   filename,
		ResumeText: resumeText,
		AIAnalysis: analysis.Fields,
		AISummary:  analysis.Summary,
	})
}

// HandleSaveResume handles POST /resume. The saved resume becomes the
// user's active one; previous rows are deactivated.
func (h *ResumeHandler) HandleSaveResume(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req models.SaveResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resume := &models.SavedResume{
		ID:         uuid.New(),
		UserID:     userID,
		ResumeText: req.ResumeText,
		AIAnalysis: req.AIAnalysis,
		AISummary:  req.AISummary,
		Filename:   req.Filename,
	}

	if err := h.resumeRepo.SaveActive(resume); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      resume.ID.String(),
		"message": "Resume saved",
	})
}

// HandleGetActiveResume handles GET /resume/active
func (h *ResumeHandler) HandleGetActiveResume(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resume, err := h.resumeRepo.FindActive(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No active resume",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load resume",
		})
	}

	return c.JSON(resume)
}
