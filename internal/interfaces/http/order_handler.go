package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/dto"
	"github.com/mirzacarpets/ledger-api/internal/application/orders"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// OrderHandler serves the order lifecycle endpoints.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Create an order with its initial stock issues
// @Description  The order and every initial issuance commit atomically. Wage
// @Description  zero or absent derives wage = length x width x price_per_sq_ft.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "order fields plus initial issues"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	issues := make([]orders.InitialIssue, 0, len(in.Issues))
	for _, line := range in.Issues {
		issues = append(issues, orders.InitialIssue{StockID: line.StockID, WeightKg: line.WeightKg})
	}
	order, err := h.uc.Create(c.Context(), orders.CreateInput{
		ContractorID:  in.ContractorID,
		Quality:       in.Quality,
		DesignNumber:  in.DesignNumber,
		ShadeCard:     in.ShadeCard,
		Length:        in.Length,
		Width:         in.Width,
		PricePerSqFt:  in.PricePerSqFt,
		PenaltyPerDay: in.PenaltyPerDay,
		Wage:          in.Wage,
		DateIssued:    in.DateIssued,
		DateDue:       in.DateDue,
		Notes:         in.Notes,
		Issues:        issues,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderFromEntity(order))
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        status         query  string  false  "Open or Closed"
// @Param        design_number  query  string  false  "Design number filter"
// @Param        shade_card     query  string  false  "Shade card filter"
// @Param        quality        query  string  false  "Quality filter"
// @Success      200  {array}   dto.OrderResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	all, err := h.uc.List(c.Context(), repository.OrderFilter{
		Status:       c.Query("status"),
		DesignNumber: c.Query("design_number"),
		ShadeCard:    c.Query("shade_card"),
		Quality:      c.Query("quality"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrdersFromEntities(all))
}

// GetByID godoc
// @Summary      Get one order with its movements and audit trail
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	txns, err := h.uc.Transactions(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	reassignments, err := h.uc.Reassignments(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"order":         dto.OrderFromEntity(order),
		"transactions":  dto.TransactionsFromDetailed(txns),
		"reassignments": dto.ReassignmentsFromEntities(reassignments),
	})
}

// Update godoc
// @Summary      Edit due date and notes on an open order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Order ID"
// @Param        body  body  dto.UpdateOrderRequest  true  "date_due and/or notes"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Update(c.Context(), c.Params("id"), orders.UpdateInput{
		DateDue: in.DateDue,
		Notes:   in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(order))
}

// IssueStock godoc
// @Summary      Issue stock against an open order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Order ID"
// @Param        body  body  dto.IssueStockRequest  true  "stock_id, weight_kg, date, notes"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/issue-stock [post]
func (h *OrderHandler) IssueStock(c *fiber.Ctx) error {
	var in dto.IssueStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	txn, err := h.uc.IssueStock(c.Context(), c.Params("id"), in.StockID, in.WeightKg, in.Date, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionFromEntity(txn))
}

// Complete godoc
// @Summary      Close an order with reconciliation and deductions
// @Description  Validates returned+kept against each outstanding stock
// @Description  position, credits returned weight to inventory at the frozen
// @Description  issue price, stores deductions, and freezes final wage and
// @Description  dimensions. All-or-nothing.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Order ID"
// @Param        body  body  dto.CompleteOrderRequest  true  "completion payload"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	reconciliation := make([]orders.ReconciliationEntry, 0, len(in.Reconciliation))
	for _, line := range in.Reconciliation {
		reconciliation = append(reconciliation, orders.ReconciliationEntry{
			StockID:    line.StockID,
			ReturnedKg: line.ReturnedKg,
			KeptKg:     line.KeptKg,
		})
	}
	deductions := make([]orders.DeductionInput, 0, len(in.Deductions))
	for _, line := range in.Deductions {
		deductions = append(deductions, orders.DeductionInput{Reason: line.Reason, Amount: line.Amount})
	}
	order, err := h.uc.Complete(c.Context(), c.Params("id"), orders.CompleteInput{
		DateCompleted:     in.DateCompleted,
		FinalWage:         in.FinalWage,
		FinalLength:       in.FinalLength,
		FinalWidth:        in.FinalWidth,
		FinalPricePerSqFt: in.FinalPricePerSqFt,
		Reconciliation:    reconciliation,
		Deductions:        deductions,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(order))
}

// Reassign godoc
// @Summary      Move an open order to another contractor
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Order ID"
// @Param        body  body  dto.ReassignOrderRequest  true  "new_contractor_id, reason"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reassign [post]
func (h *OrderHandler) Reassign(c *fiber.Ctx) error {
	var in dto.ReassignOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.Reassign(c.Context(), c.Params("id"), in.NewContractorID, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderFromEntity(order))
}

// ReturnStock godoc
// @Summary      Return material after closure
// @Description  Credits inventory and logs a Returned transaction at the
// @Description  frozen issue price. Open orders settle returns through
// @Description  completion instead.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Order ID"
// @Param        body  body  dto.ReturnStockRequest  true  "stock_id, weight_kg, date"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/return-stock [post]
func (h *OrderHandler) ReturnStock(c *fiber.Ctx) error {
	var in dto.ReturnStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	txn, err := h.uc.ReturnStock(c.Context(), c.Params("id"), in.StockID, in.WeightKg, in.Date)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionFromEntity(txn))
}

// Financials godoc
// @Summary      Financial summary of one order
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  finance.Summary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/financials [get]
func (h *OrderHandler) Financials(c *fiber.Ctx) error {
	summary, err := h.uc.Financials(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Payments godoc
// @Summary      Payments recorded against one order
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {array}   dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payments [get]
func (h *OrderHandler) Payments(c *fiber.Ctx) error {
	payments, err := h.uc.Payments(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PaymentsFromEntities(payments))
}

// UpdateTransaction godoc
// @Summary      Edit a transaction's weight and date
// @Description  Only legal while the owning order is Open; inventory is
// @Description  adjusted by the weight delta.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Transaction ID"
// @Param        body  body  dto.UpdateTransactionRequest  true  "weight_kg, date"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [put]
func (h *OrderHandler) UpdateTransaction(c *fiber.Ctx) error {
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	txn, err := h.uc.UpdateTransaction(c.Context(), c.Params("id"), in.WeightKg, in.Date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TransactionFromEntity(txn))
}

// DeleteTransaction godoc
// @Summary      Delete a transaction from an open order
// @Description  Reverses the inventory effect: deleting an issue restores
// @Description  stock, deleting a return re-deducts it.
// @Tags         transactions
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *OrderHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.uc.DeleteTransaction(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
