package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/compliance-dashboard/internal/models"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

type UploadHandler struct {
	dashboard   services.DashboardService
	writer      services.SourceWriter
	maxFileSize int64
}

// NewUploadHandler builds the upload endpoint. A nil writer disables uploads.
func NewUploadHandler(
	dashboard services.DashboardService,
	writer services.SourceWriter,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		dashboard:   dashboard,
		writer:      writer,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /sources/:source/upload. The multipart "file"
// field replaces the source once it decodes as the right kind of data.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	source := sourceParam(c)

	if h.writer == nil {
		return respondError(c, h.dashboard, source, 0, services.ErrUploadsDisabled)
	}

	if err := h.dashboard.CheckSource(source); err != nil {
		return respondError(c, h.dashboard, source, 0, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read multipart field 'file'",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}
	if int64(len(content)) > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	if err := h.dashboard.ValidateSource(source, content); err != nil {
		return respondError(c, h.dashboard, source, 0, err)
	}

	if err := h.writer.Save(c.UserContext(), source, content); err != nil {
		if errors.Is(err, services.ErrSourceNotFound) {
			return respondError(c, h.dashboard, source, 0, err)
		}
		log.Printf("❌ Failed to store source %q: %v\n", source, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to store source %s", source),
		})
	}

	h.dashboard.Reload(source)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		Source:  source,
		Size:    len(content),
		Message: "Source uploaded successfully",
	})
}
