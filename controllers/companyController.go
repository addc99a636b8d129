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

type CompanyDTO struct {
	Name        string `json:"name" validate:"required,min=1"`
	Address     string `json:"address" validate:"omitempty"`
	City        string `json:"city" validate:"omitempty"`
	State       string `json:"state" validate:"omitempty"`
	Pincode     string `json:"pincode" validate:"omitempty"`
	Phone       string `json:"phone" validate:"omitempty"`
	Email       string `json:"email" validate:"omitempty,email"`
	GSTIN       string `json:"gstin" validate:"omitempty,max=15"`
	PAN         string `json:"pan" validate:"omitempty,max=10"`
	BankName    string `json:"bank_name" validate:"omitempty"`
	BankAccount string `json:"bank_account" validate:"omitempty"`
	BankIFSC    string `json:"bank_ifsc" validate:"omitempty"`
}

// GET /api/company
func GetCompany(c *fiber.Ctx) error {
	var company models.CompanyInfo
	err := database.DB.First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Profile not filled in yet.
		return c.JSON(fiber.Map{})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(company)
}

// PUT /api/company — upserts the singleton profile
func UpdateCompany(c *fiber.Ctx) error {
	var in CompanyDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	company := models.CompanyInfo{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Pincode:     in.Pincode,
		Phone:       in.Phone,
		Email:       in.Email,
		GSTIN:       in.GSTIN,
		PAN:         in.PAN,
		BankName:    in.BankName,
		BankAccount: in.BankAccount,
		BankIFSC:    in.BankIFSC,
	}

	var existing models.CompanyInfo
	err := database.DB.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := database.DB.Create(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not save company profile")
		}
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	default:
		company.ID = existing.ID
		if err := database.DB.Save(&company).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not save company profile")
		}
	}

	datasync.Default.Replace("companyInfo", itoa(company.ID), company)
	logActivity(c, "update", "company", itoa(company.ID), company)
	return c.JSON(company)
}
