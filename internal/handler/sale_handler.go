package handler

import (
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	sales   service.SaleService
	summary service.SummaryService
}

func NewSaleHandler(sales service.SaleService, summary service.SummaryService) *SaleHandler {
	return &SaleHandler{sales: sales, summary: summary}
}

// GetSales returns the user's sales, newest first
// GET /api/sales/get/:user_id
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	records, err := h.sales.GetSales(userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(records)
}

// GetSale returns one of the user's sales
// GET /api/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	userID, id, err := recordIDs(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	record, err := h.sales.GetSale(userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(record)
}

// AddSale records a sale and decrements the product's stock
// POST /api/sales/add
func (h *SaleHandler) AddSale(c *fiber.Ctx) error {
	var req model.SaleInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.sales.RecordSale(c.UserContext(), &req, actorFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale.ToRecord()})
}

// GetSummary returns count, units and total value of the user's sales
// GET /api/sales/summary/:user_id
func (h *SaleHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	summary, err := h.summary.GetSummary(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales summary"})
	}
	return c.JSON(summary)
}
