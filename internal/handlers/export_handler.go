package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"ats-engine/internal/models"
	"ats-engine/internal/services"
)

type ExportHandler struct {
	exporter services.ExportService
}

func NewExportHandler(exporter services.ExportService) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
	}
}

// HandleExport handles POST /export: takes the results of a completed
// analysis and returns them as a styled spreadsheet attachment.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	var results models.BatchResult
	if err := c.BodyParser(&results); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload: expected an array of results",
		})
	}

	data, err := h.exporter.Render(results)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to generate Excel report: %v", err),
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=ATS_Report.xlsx`)
	return c.Send(data)
}
