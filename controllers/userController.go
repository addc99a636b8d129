package controllers

import (
	"errors"

	"plastiwood-backend/database"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserCreateDTO struct {
	Username string `json:"username" validate:"required,min=1"`
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=owner staff"`
}

type UserUpdateDTO struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// GET /api/users (owner only)
func GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(users)
}

// POST /api/users (owner only)
func CreateUser(c *fiber.Ctx) error {
	var in UserCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)
	if in.Role == "" {
		in.Role = models.RoleStaff
	}

	// Usernames are unique case-insensitively.
	var count int64
	if err := database.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", in.Username).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "username already exists")
	}

	user := models.User{
		Username: in.Username,
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     in.Role,
	}
	user.SetPassword(in.Password)
	if err := database.DB.Create(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create user")
	}

	logActivity(c, "create", "user", user.ID, fiber.Map{"username": user.Username, "role": user.Role})
	return c.Status(fiber.StatusCreated).JSON(user)
}

// PUT /api/users/:id — self-service profile edit, or any user for owners.
// Only owners may change a username; a password change is re-hashed.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	callerID, _ := c.Locals("userID").(string)
	callerRole, _ := c.Locals("role").(string)

	if callerRole != models.RoleOwner && callerID != id {
		return fiber.NewError(fiber.StatusForbidden, "can only update your own profile")
	}

	var in UserUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	var existing models.User
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.Username != nil && callerRole != models.RoleOwner {
		return fiber.NewError(fiber.StatusForbidden, "only owners can change usernames")
	}
	if in.Username != nil {
		var count int64
		if err := database.DB.Model(&models.User{}).
			Where("LOWER(username) = LOWER(?) AND id <> ?", *in.Username, id).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "username already exists")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	delete(updates, "password")
	if in.Password != nil {
		tmp := models.User{}
		tmp.SetPassword(*in.Password)
		updates["password"] = tmp.Password
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update user")
		}
	}

	var out models.User
	if err := database.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload user")
	}

	logActivity(c, "update", "user", out.ID, fiber.Map{"username": out.Username})
	return c.JSON(out)
}

// DELETE /api/users/:id (owner only; self-deletion rejected)
func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	callerID, _ := c.Locals("userID").(string)
	if callerID == id {
		return fiber.NewError(fiber.StatusBadRequest, "cannot delete your own account")
	}

	var existing models.User
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := database.DB.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete user")
	}

	logActivity(c, "delete", "user", existing.ID, fiber.Map{"username": existing.Username})
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
