package controllers

import (
	"errors"

	"plastiwood-backend/database"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LoginDTO struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// POST /api/login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	// Usernames are unique case-insensitively.
	var user models.User
	err := database.DB.Where("LOWER(username) = LOWER(?)", in.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := user.ComparePassword(in.Password); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := middlewares.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sign token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GET /api/me
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "user no longer exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(user)
}
