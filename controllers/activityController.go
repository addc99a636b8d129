package controllers

import (
	"plastiwood-backend/database"
	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// GET /api/activity?limit=N — most recent mutations, newest first.
func GetActivity(c *fiber.Ctx) error {
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	if limit > 200 {
		limit = 200
	}

	var entries []models.ActivityLog
	if err := database.DB.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(entries)
}
