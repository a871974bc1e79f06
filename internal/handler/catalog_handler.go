package handler

import (
	"go-retail-sales/internal/model"
	"go-retail-sales/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GET /api/product/get/:user_id
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	products, err := h.service.GetProducts(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// GET /api/store/get/:user_id
func (h *CatalogHandler) GetStores(c *fiber.Ctx) error {
	userID, err := ownerID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	stores, err := h.service.GetStores(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stores)
}

// GET /api/product/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	userID, id, err := recordIDs(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// GET /api/store/:id
func (h *CatalogHandler) GetStore(c *fiber.Ctx) error {
	userID, id, err := recordIDs(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.service.GetStore(userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(store)
}

// POST /api/product/add
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(c.UserContext(), &product, actorFrom(c)); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// POST /api/store/add
func (h *CatalogHandler) CreateStore(c *fiber.Ctx) error {
	var store model.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateStore(c.UserContext(), &store, actorFrom(c)); err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Store created", "data": store})
}
