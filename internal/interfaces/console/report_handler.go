package console

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-cliente/internal/application/dto"
	"github.com/jhoicas/gestion-cliente/internal/application/usecase"
)

// ReportRenderer exporta un snapshot de reportes (lo implementa pdf.ReportGenerator).
type ReportRenderer interface {
	Generate(ctx context.Context, snap *dto.ReportSnapshot, generatedBy string) ([]byte, error)
}

// ReportFilename nombre sugerido del PDF descargado.
const ReportFilename = "reporte-ventas.pdf"

// ReportHandler vista /reports y exportación PDF.
type ReportHandler struct {
	uc       *usecase.ReportUseCase
	renderer ReportRenderer
	src      usecase.SessionSource
}

// NewReportHandler construye el handler. renderer puede ser nil (sin exportación).
func NewReportHandler(uc *usecase.ReportUseCase, renderer ReportRenderer, src usecase.SessionSource) *ReportHandler {
	return &ReportHandler{uc: uc, renderer: renderer, src: src}
}

// Show GET /reports.
func (h *ReportHandler) Show(c *fiber.Ctx) error {
	snap, err := h.uc.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return render(c, h.src, "reports", snap)
}

// PDF GET /reports/pdf.
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	if h.renderer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "exportación PDF no disponible"})
	}
	ctx := c.UserContext()
	snap, err := h.uc.Snapshot(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.renderer.Generate(ctx, snap, h.src.Session().User.DisplayLabel())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(ReportFilename)
	return c.Send(out)
}
