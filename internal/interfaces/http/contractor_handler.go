package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/contractors"
	"github.com/mirzacarpets/ledger-api/internal/application/dto"
)

// ContractorHandler serves contractor endpoints including the ledger view.
type ContractorHandler struct {
	uc *contractors.UseCase
}

// NewContractorHandler builds the handler.
func NewContractorHandler(uc *contractors.UseCase) *ContractorHandler {
	return &ContractorHandler{uc: uc}
}

// Create godoc
// @Summary      Register a contractor
// @Tags         contractors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractorRequest  true  "name, contact_info"
// @Success      201   {object}  dto.ContractorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contractors [post]
func (h *ContractorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	contractor, err := h.uc.Create(c.Context(), in.Name, in.ContactInfo)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ContractorFromEntity(contractor))
}

// List godoc
// @Summary      List contractors
// @Tags         contractors
// @Produce      json
// @Success      200  {array}   dto.ContractorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/contractors [get]
func (h *ContractorHandler) List(c *fiber.Ctx) error {
	all, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ContractorResponse, 0, len(all))
	for _, contractor := range all {
		out = append(out, dto.ContractorFromEntity(contractor))
	}
	return c.JSON(out)
}

// Details godoc
// @Summary      Full contractor ledger
// @Description  The contractor with every order and its financial summary,
// @Description  payments, net held stock on open orders, issue history, and
// @Description  the rolled-up balance with per-quality buckets.
// @Tags         contractors
// @Produce      json
// @Param        id  path  string  true  "Contractor ID"
// @Success      200  {object}  dto.ContractorDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contractors/{id} [get]
func (h *ContractorHandler) Details(c *fiber.Ctx) error {
	details, err := h.uc.Details(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ContractorDetails(details))
}

// Statement godoc
// @Summary      Contractor statement PDF
// @Tags         contractors
// @Produce      application/pdf
// @Param        id  path  string  true  "Contractor ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contractors/{id}/statement [get]
func (h *ContractorHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Statement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
	return c.Send(pdfBytes)
}
