package controllers

import (
	"errors"

	"plastiwood-backend/database"
	"plastiwood-backend/datasync"
	"plastiwood-backend/gst"
	"plastiwood-backend/ledger"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PartyDTO struct {
	GSTIN   string `json:"gstin" validate:"required,min=1,max=15"`
	Name    string `json:"name" validate:"required,min=1"`
	Phone   string `json:"phone" validate:"omitempty"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty"`
	State   string `json:"state" validate:"omitempty"`
}

type PurchaseItemDTO struct {
	Name      string  `json:"name" validate:"required,min=1"`
	HSN       string  `json:"hsn" validate:"omitempty"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
	Size      string  `json:"size" validate:"omitempty"`
	Color     string  `json:"color" validate:"omitempty"`
	ColorCode string  `json:"color_code" validate:"omitempty"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	GST       float64 `json:"gst" validate:"omitempty,gte=0,lte=100"`
}

type PurchaseCreateDTO struct {
	BillNumber      string            `json:"bill_number" validate:"required,min=1"`
	Supplier        PartyDTO          `json:"supplier" validate:"required"`
	Date            string            `json:"date" validate:"required"`
	DueDate         string            `json:"due_date" validate:"omitempty"`
	PaymentMethod   string            `json:"payment_method" validate:"omitempty"`
	PaymentStatus   string            `json:"payment_status" validate:"omitempty,oneof=pending paid overdue"`
	Items           []PurchaseItemDTO `json:"items" validate:"required,min=1,dive"`
	ReceiptFile     string            `json:"receipt_file" validate:"omitempty"`
	ReceiptFilename string            `json:"receipt_filename" validate:"omitempty"`
}

type PurchaseUpdateDTO struct {
	PaymentStatus *string `json:"payment_status" validate:"omitempty,oneof=pending paid overdue"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty"`
}

// GET /api/purchases
func GetPurchases(c *fiber.Ctx) error {
	var purchases []models.Purchase
	if err := database.DB.Preload("Items").
		Order("date DESC, id DESC").Find(&purchases).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(purchases)
}

// POST /api/purchases
//
// Creates the bill, upserts the supplier rollup and restocks inventory in a
// single transaction: an existing item (matched by name+hsn) gains the
// purchased qty, an unknown item is added to inventory.
func CreatePurchase(c *fiber.Ctx) error {
	var in PurchaseCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	dueDate, err := parseOptionalDate(in.DueDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid due_date, want YYYY-MM-DD")
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = models.PaymentStatusPending
	}

	lines := make([]gst.LineItem, len(in.Items))
	items := make([]models.PurchaseItem, len(in.Items))
	for i, it := range in.Items {
		gstRate := it.GST
		if gstRate == 0 {
			gstRate = 18
		}
		lines[i] = gst.LineItem{Qty: it.Qty, Rate: it.Rate, GST: gstRate}
		items[i] = models.PurchaseItem{
			Name:      it.Name,
			HSN:       it.HSN,
			Qty:       it.Qty,
			Size:      it.Size,
			Color:     it.Color,
			ColorCode: it.ColorCode,
			Rate:      utils.Round2(it.Rate),
			GST:       gstRate,
		}
	}
	totals := gst.CalculatePurchase(lines)

	purchase := models.Purchase{
		BillNumber:      in.BillNumber,
		SupplierGSTIN:   in.Supplier.GSTIN,
		SupplierName:    in.Supplier.Name,
		SupplierPhone:   in.Supplier.Phone,
		Date:            date,
		DueDate:         dueDate,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   in.PaymentStatus,
		TotalAmount:     totals.GrandTotal,
		ReceiptFile:     in.ReceiptFile,
		ReceiptFilename: in.ReceiptFilename,
		Items:           items,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		supplier := models.Supplier{
			GSTIN:   in.Supplier.GSTIN,
			Name:    in.Supplier.Name,
			Phone:   in.Supplier.Phone,
			Email:   in.Supplier.Email,
			Address: in.Supplier.Address,
			State:   in.Supplier.State,
		}
		if err := ledger.RecordSupplierTransaction(tx, supplier, totals.GrandTotal, date); err != nil {
			return err
		}

		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		for _, it := range purchase.Items {
			if err := restockInventory(tx, it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create purchase")
	}

	// Reload so generated item amounts are populated.
	var out models.Purchase
	if err := database.DB.Preload("Items").First(&out, purchase.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload purchase")
	}

	datasync.Default.Append("purchases", itoa(out.ID), out)
	logActivity(c, "create", "purchase", itoa(out.ID), out)
	return c.Status(fiber.StatusCreated).JSON(out)
}

func restockInventory(tx *gorm.DB, it models.PurchaseItem) error {
	var existing models.InventoryItem
	err := tx.Where("name = ? AND hsn = ?", it.Name, it.HSN).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.InventoryItem{
			Name:      it.Name,
			HSN:       it.HSN,
			Quantity:  it.Qty,
			Size:      it.Size,
			Stock:     it.Qty,
			Color:     it.Color,
			ColorCode: it.ColorCode,
			Price:     it.Rate,
			GST:       it.GST,
		}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&models.InventoryItem{}).Where("id = ?", existing.ID).Updates(map[string]any{
		"stock":      gorm.Expr("stock + ?", it.Qty),
		"color":      it.Color,
		"color_code": it.ColorCode,
		"price":      it.Rate,
		"gst":        it.GST,
	}).Error
}

// PUT /api/purchases/:id — payment status/method only
func UpdatePurchase(c *fiber.Ctx) error {
	id := c.Params("id")

	var in PurchaseUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var existing models.Purchase
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "purchase not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := database.DB.Model(&models.Purchase{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update purchase")
		}
	}

	var out models.Purchase
	if err := database.DB.Preload("Items").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload purchase")
	}

	datasync.Default.Replace("purchases", itoa(out.ID), out)
	logActivity(c, "update", "purchase", itoa(out.ID), out)
	return c.JSON(out)
}

// DELETE /api/purchases/:id (owner only)
//
// Reverses the supplier rollup in the same transaction as the delete; line
// items go with the bill via ON DELETE CASCADE.
func DeletePurchase(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Purchase
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "purchase not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := ledger.ReverseSupplierTransaction(tx, existing.SupplierGSTIN, existing.TotalAmount); err != nil {
			return err
		}
		return tx.Delete(&models.Purchase{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete purchase")
	}

	datasync.Default.Remove("purchases", itoa(existing.ID))
	logActivity(c, "delete", "purchase", itoa(existing.ID), existing)
	return c.JSON(fiber.Map{"message": "Purchase deleted successfully"})
}

// GET /api/purchases/suppliers
func GetSuppliers(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := database.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(suppliers)
}

// DELETE /api/purchases/suppliers/:gstin (owner only)
func DeleteSupplier(c *fiber.Ctx) error {
	gstin := c.Params("gstin")

	var existing models.Supplier
	if err := database.DB.First(&existing, "gstin = ?", gstin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "supplier not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := database.DB.Delete(&models.Supplier{}, "gstin = ?", gstin).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete supplier")
	}

	datasync.Default.Remove("suppliers", existing.GSTIN)
	logActivity(c, "delete", "supplier", existing.GSTIN, existing)
	return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}
