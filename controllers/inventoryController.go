package controllers

import (
	"errors"

	"plastiwood-backend/database"
	"plastiwood-backend/datasync"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryItemDTO struct {
	Name      string  `json:"name" validate:"required,min=1"`
	HSN       string  `json:"hsn" validate:"omitempty"`
	Quantity  int     `json:"quantity" validate:"omitempty,gte=0"`
	Size      string  `json:"size" validate:"omitempty"`
	Stock     int     `json:"stock" validate:"omitempty,gte=0"`
	Color     string  `json:"color" validate:"omitempty"`
	ColorCode string  `json:"color_code" validate:"omitempty"`
	Price     float64 `json:"price" validate:"omitempty,gte=0"`
	GST       float64 `json:"gst" validate:"omitempty,gte=0,lte=100"`
}

type StockUpdateDTO struct {
	Stock int `json:"stock" validate:"gte=0"`
}

// GET /api/inventory
func GetInventory(c *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(items)
}

// POST /api/inventory (owner only)
func CreateInventoryItem(c *fiber.Ctx) error {
	var in InventoryItemDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	if in.GST == 0 {
		in.GST = 18
	}

	item := models.InventoryItem{
		Name:      in.Name,
		HSN:       in.HSN,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Stock:     in.Stock,
		Color:     in.Color,
		ColorCode: in.ColorCode,
		Price:     in.Price,
		GST:       in.GST,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create inventory item")
	}

	// Reload so generated taxed_price is populated.
	if err := database.DB.First(&item, item.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload inventory item")
	}

	datasync.Default.Append("inventory", itoa(item.ID), item)
	logActivity(c, "create", "inventory", itoa(item.ID), item)
	return c.Status(fiber.StatusCreated).JSON(item)
}

// PUT /api/inventory/:id (owner only, full replace)
func UpdateInventoryItem(c *fiber.Ctx) error {
	id := c.Params("id")

	var in InventoryItemDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	if in.GST == 0 {
		in.GST = 18
	}

	var existing models.InventoryItem
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{
		"name":       in.Name,
		"hsn":        in.HSN,
		"quantity":   in.Quantity,
		"size":       in.Size,
		"stock":      in.Stock,
		"color":      in.Color,
		"color_code": in.ColorCode,
		"price":      in.Price,
		"gst":        in.GST,
	}
	if err := database.DB.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update inventory item")
	}

	var out models.InventoryItem
	if err := database.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload inventory item")
	}

	datasync.Default.Replace("inventory", itoa(out.ID), out)
	logActivity(c, "update", "inventory", itoa(out.ID), out)
	return c.JSON(out)
}

// PATCH /api/inventory/:id/stock
func UpdateInventoryStock(c *fiber.Ctx) error {
	id := c.Params("id")

	var in StockUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var existing models.InventoryItem
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := database.DB.Model(&models.InventoryItem{}).Where("id = ?", id).
		Update("stock", in.Stock).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update stock")
	}

	var out models.InventoryItem
	if err := database.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload inventory item")
	}

	datasync.Default.Replace("inventory", itoa(out.ID), out)
	return c.JSON(out)
}

// DELETE /api/inventory/:id (owner only)
func DeleteInventoryItem(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.InventoryItem
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := database.DB.Delete(&models.InventoryItem{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete inventory item")
	}

	datasync.Default.Remove("inventory", itoa(existing.ID))
	logActivity(c, "delete", "inventory", itoa(existing.ID), existing)
	return c.JSON(fiber.Map{"message": "Inventory item deleted successfully"})
}
