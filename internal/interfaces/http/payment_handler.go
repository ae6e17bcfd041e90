package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/dto"
	"github.com/mirzacarpets/ledger-api/internal/application/payments"
)

// PaymentHandler serves payment endpoints.
type PaymentHandler struct {
	uc *payments.UseCase
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(uc *payments.UseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Record godoc
// @Summary      Record a payment
// @Description  order_id empty records a general contractor-level payment,
// @Description  netted only in the contractor summary. With order_id set the
// @Description  contractor is taken from the order.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "contractor_id or order_id, amount, date, notes"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.Record(c.Context(), payments.RecordInput{
		ContractorID: in.ContractorID,
		OrderID:      in.OrderID,
		Amount:       in.Amount,
		Date:         in.Date,
		Notes:        in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PaymentFromEntity(payment))
}

// GetByID godoc
// @Summary      Get one payment
// @Tags         payments
// @Produce      json
// @Param        id  path  string  true  "Payment ID"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	payment, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PaymentFromEntity(payment))
}

// Update godoc
// @Summary      Edit a payment
// @Description  Payments against closed orders are settled history and
// @Description  cannot be edited.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Payment ID"
// @Param        body  body  dto.UpdatePaymentRequest  true  "amount, date, notes"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	payment, err := h.uc.Update(c.Context(), c.Params("id"), in.Amount, in.Date, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PaymentFromEntity(payment))
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Param        id  path  string  true  "Payment ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
