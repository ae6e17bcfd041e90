package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mirzacarpets/ledger-api/internal/application/dto"
	"github.com/mirzacarpets/ledger-api/internal/application/stock"
	"github.com/mirzacarpets/ledger-api/internal/domain/entity"
	"github.com/mirzacarpets/ledger-api/internal/domain/repository"
)

// StockHandler serves raw-material inventory endpoints.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler builds the handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Register a stock item
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "type, quality, color_shade, price_per_kg, quantity_kg"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.Create(c.Context(), stock.CreateInput{
		Type:       in.Type,
		Quality:    in.Quality,
		ColorShade: in.ColorShade,
		PricePerKg: in.PricePerKg,
		QuantityKg: in.QuantityKg,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockItemFromEntity(item))
}

// Search godoc
// @Summary      Search stock items
// @Description  Case-insensitive substring filters, AND-combined; no filters
// @Description  lists the whole inventory.
// @Tags         stock
// @Produce      json
// @Param        type         query  string  false  "Material type filter"
// @Param        quality      query  string  false  "Quality filter"
// @Param        color_shade  query  string  false  "Shade filter"
// @Success      200  {array}   dto.StockItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock-items [get]
func (h *StockHandler) Search(c *fiber.Ctx) error {
	items, err := h.uc.Search(c.Context(), repository.StockItemFilter{
		Type:       c.Query("type"),
		Quality:    c.Query("quality"),
		ColorShade: c.Query("color_shade"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockItemsFromEntities(items))
}

// GetByID godoc
// @Summary      Get one stock item
// @Tags         stock
// @Produce      json
// @Param        id  path  string  true  "Stock item ID"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockItemFromEntity(item))
}

// Update godoc
// @Summary      Top up and/or reprice a stock item
// @Description  add_quantity_kg credits purchased weight; price_per_kg sets
// @Description  the current price. Repricing never rewrites the frozen prices
// @Description  on historical transactions.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Stock item ID"
// @Param        body  body  dto.UpdateStockItemRequest  true  "add_quantity_kg and/or price_per_kg"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.AddQuantityKg == nil && in.PricePerKg == nil {
		return badBody(c)
	}
	id := c.Params("id")
	var item *entity.StockItem
	var err error
	if in.PricePerKg != nil {
		if item, err = h.uc.Reprice(c.Context(), id, *in.PricePerKg); err != nil {
			return respondError(c, err)
		}
	}
	if in.AddQuantityKg != nil {
		if item, err = h.uc.AddQuantity(c.Context(), id, *in.AddQuantityKg); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(dto.StockItemFromEntity(item))
}
