package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/enterprise-ats/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleTimeToHire handles GET /reports/time_to_hire
func (h *ReportHandler) HandleTimeToHire(c *fiber.Ctx) error {
	report, err := h.reportService.TimeToHire(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(report)
}
