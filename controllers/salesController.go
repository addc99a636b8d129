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

type InvoiceItemDTO struct {
	Name string  `json:"name" validate:"required,min=1"`
	HSN  string  `json:"hsn" validate:"omitempty"`
	Qty  int     `json:"qty" validate:"required,gt=0"`
	Rate float64 `json:"rate" validate:"gte=0"`
	GST  float64 `json:"gst" validate:"omitempty,gte=0,lte=100"`
}

type SaleCreateDTO struct {
	Customer      PartyDTO         `json:"customer" validate:"required"`
	BillingState  string           `json:"state" validate:"omitempty"`
	PlaceOfSupply string           `json:"place_of_supply" validate:"omitempty"`
	Date          string           `json:"date" validate:"required"`
	Items         []InvoiceItemDTO `json:"items" validate:"required,min=1,dive"`
}

type InvoiceUpdateDTO struct {
	PaidAmount *float64 `json:"paid_amount" validate:"omitempty,gte=0"`
	Status     *string  `json:"status" validate:"omitempty,oneof=pending partial paid"`
}

// GET /api/sales
func GetInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice
	if err := database.DB.Preload("Items").
		Order("date DESC, id DESC").Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(invoices)
}

// POST /api/sales
//
// One transaction creates the invoice with its items, advances the customer
// rollup, and creates the fulfilment order linked back to the invoice.
func CreateSale(c *fiber.Ctx) error {
	var in SaleCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	if in.BillingState == "" {
		in.BillingState = in.Customer.State
	}
	if in.PlaceOfSupply == "" {
		in.PlaceOfSupply = in.BillingState
	}

	lines := make([]gst.LineItem, len(in.Items))
	invoiceItems := make([]models.InvoiceItem, len(in.Items))
	orderItems := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		gstRate := it.GST
		if gstRate == 0 {
			gstRate = 18
		}
		lines[i] = gst.LineItem{Qty: it.Qty, Rate: it.Rate, GST: gstRate}
		invoiceItems[i] = models.InvoiceItem{
			Name: it.Name,
			HSN:  it.HSN,
			Qty:  it.Qty,
			Rate: utils.Round2(it.Rate),
			GST:  gstRate,
		}
		orderItems[i] = models.OrderItem{
			Name:     it.Name,
			Quantity: it.Qty,
			Price:    utils.Round2(it.Rate),
		}
	}
	breakup := gst.Calculate(lines, in.BillingState, in.PlaceOfSupply)

	invoice := models.Invoice{
		CustomerGSTIN:   in.Customer.GSTIN,
		CustomerName:    in.Customer.Name,
		CustomerPhone:   in.Customer.Phone,
		CustomerEmail:   in.Customer.Email,
		CustomerAddress: in.Customer.Address,
		BillingState:    in.BillingState,
		PlaceOfSupply:   in.PlaceOfSupply,
		Date:            date,
		Status:          models.InvoiceStatusPending,
		TotalAmount:     breakup.GrandTotal,
		Items:           invoiceItems,
	}
	order := models.Order{
		CustomerName:    in.Customer.Name,
		CustomerPhone:   in.Customer.Phone,
		CustomerEmail:   in.Customer.Email,
		ShippingAddress: in.Customer.Address,
		OrderDate:       date,
		Status:          models.OrderStatusPending,
		TotalAmount:     breakup.GrandTotal,
		CreatedFrom:     models.OrderSourceSales,
		Items:           orderItems,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		customer := models.Customer{
			GSTIN:   in.Customer.GSTIN,
			Name:    in.Customer.Name,
			Phone:   in.Customer.Phone,
			Email:   in.Customer.Email,
			Address: in.Customer.Address,
			State:   in.Customer.State,
		}
		if err := ledger.RecordCustomerTransaction(tx, customer, breakup.GrandTotal, date); err != nil {
			return err
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		order.InvoiceID = &invoice.ID
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Close the soft link from the invoice side.
		invoice.OrderID = &order.ID
		return tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
			Update("order_id", order.ID).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create invoice")
	}

	var out models.Invoice
	if err := database.DB.Preload("Items").First(&out, invoice.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload invoice")
	}

	datasync.Default.Append("invoices", itoa(out.ID), out)
	datasync.Default.Append("orders", itoa(order.ID), order)
	logActivity(c, "create", "invoice", itoa(out.ID), out)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"invoice": out,
		"tax":     breakup,
	})
}

// PUT /api/sales/:id — payment fields; may move the linked order forward
func UpdateInvoice(c *fiber.Ctx) error {
	id := c.Params("id")

	var in InvoiceUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	var existing models.Invoice
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := database.DB.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update invoice")
		}
	}

	newStatus := existing.Status
	if in.Status != nil {
		newStatus = *in.Status
	}
	propagateToOrder(existing, newStatus)

	var out models.Invoice
	if err := database.DB.Preload("Items").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload invoice")
	}

	datasync.Default.Replace("invoices", itoa(out.ID), out)
	logActivity(c, "update", "invoice", itoa(out.ID), out)
	return c.JSON(out)
}

// propagateToOrder moves a linked pending order to processing when its
// invoice is paid. Best effort, matching the loose coupling of the link.
func propagateToOrder(invoice models.Invoice, newStatus string) {
	if invoice.OrderID == nil {
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", *invoice.OrderID).Error; err != nil {
		return
	}

	next, changed := ledger.OrderStatusAfterInvoiceChange(invoice.Status, newStatus, order.Status)
	if !changed {
		return
	}
	if err := database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", next).Error; err != nil {
		return
	}
	order.Status = next
	datasync.Default.Replace("orders", itoa(order.ID), order)
}

// DELETE /api/sales/:id (owner only)
//
// Reverses the customer rollup and cascade-deletes the linked order when the
// order was created from this sale.
func DeleteInvoice(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Invoice
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var removedOrderID string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := ledger.ReverseCustomerTransaction(tx, existing.CustomerGSTIN, existing.TotalAmount); err != nil {
			return err
		}

		if existing.OrderID != nil {
			var order models.Order
			err := tx.First(&order, "id = ?", *existing.OrderID).Error
			if err == nil && order.CreatedFrom == models.OrderSourceSales {
				if err := tx.Delete(&models.Order{}, "id = ?", order.ID).Error; err != nil {
					return err
				}
				removedOrderID = itoa(order.ID)
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		return tx.Delete(&models.Invoice{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete invoice")
	}

	datasync.Default.Remove("invoices", itoa(existing.ID))
	if removedOrderID != "" {
		datasync.Default.Remove("orders", removedOrderID)
	}
	logActivity(c, "delete", "invoice", itoa(existing.ID), existing)
	return c.JSON(fiber.Map{"message": "Invoice deleted successfully"})
}

// GET /api/sales/customers
func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	if err := database.DB.Order("name ASC").Find(&customers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(customers)
}

// DELETE /api/sales/customers/:gstin (owner only)
func DeleteCustomer(c *fiber.Ctx) error {
	gstin := c.Params("gstin")

	var existing models.Customer
	if err := database.DB.First(&existing, "gstin = ?", gstin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := database.DB.Delete(&models.Customer{}, "gstin = ?", gstin).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete customer")
	}

	datasync.Default.Remove("customers", existing.GSTIN)
	logActivity(c, "delete", "customer", existing.GSTIN, existing)
	return c.JSON(fiber.Map{"message": "Customer deleted successfully"})
}
