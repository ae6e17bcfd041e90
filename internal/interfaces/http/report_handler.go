package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/dto"
	"github.com/mirzacarpets/ledger-api/internal/application/reports"
)

// ReportHandler serves the cross-contractor reporting endpoints.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// HeldStock godoc
// @Summary      Currently held stock per contractor
// @Description  Open-order transactions netted per (contractor, stock);
// @Description  settled positions dropped.
// @Tags         reports
// @Produce      json
// @Success      200  {array}   reports.HeldStockLine
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/held-stock [get]
func (h *ReportHandler) HeldStock(c *fiber.Ctx) error {
	lines, err := h.uc.HeldStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lines)
}

// IssueHistory godoc
// @Summary      Total ever-issued weight per contractor and stock
// @Tags         reports
// @Produce      json
// @Param        contractor_id  query  string  false  "Limit to one contractor"
// @Success      200  {array}   dto.IssuedTotalResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/issue-history [get]
func (h *ReportHandler) IssueHistory(c *fiber.Ctx) error {
	totals, err := h.uc.IssueHistory(c.Context(), c.Query("contractor_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.IssuedTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.IssuedTotalFromRepo(t))
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Full ledger export as an Excel workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	book, err := h.uc.Export(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ledger.xlsx"`)
	return c.Send(book)
}
