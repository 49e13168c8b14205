package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/api/dto"
	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/service"
	apperrors "github.com/SalahNassar0/IT-Tickets-Analysis/pkg/util"
)

// DatasetsHandler manages upload sessions and the filtered CSV download.
type DatasetsHandler struct {
	service *service.DashboardService
}

// NewDatasetsHandler constructs handler.
func NewDatasetsHandler(dashboardService *service.DashboardService) *DatasetsHandler {
	return &DatasetsHandler{service: dashboardService}
}

// Upload POST /datasets. Accepts the CSV either as a multipart "file" field
// or as the raw request body.
func (h *DatasetsHandler) Upload(c *fiber.Ctx) error {
	raw, err := uploadContent(c)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return apperrors.NewValidationError("empty upload", nil)
	}

	id, report, err := h.service.Upload(c.Context(), raw)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.UploadResponse{
		DatasetID: id,
		Report:    report,
	}})
}

// Report GET /datasets/:id/report.
func (h *DatasetsHandler) Report(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Export GET /datasets/:id/export. Streams the filtered view as a CSV
// attachment.
func (h *DatasetsHandler) Export(c *fiber.Ctx) error {
	spec, err := parseFilterSpec(c)
	if err != nil {
		return err
	}
	payload, err := h.service.Export(c.Context(), c.Params("id"), spec)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "tickets_filtered.csv"))
	return c.Send(payload)
}

// Delete DELETE /datasets/:id.
func (h *DatasetsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Drop(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func uploadContent(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		// not multipart; the body is the CSV itself
		return c.Body(), nil
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable upload", nil)
	}
	return raw, nil
}
