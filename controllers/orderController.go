package controllers

import (
	"errors"

	"plastiwood-backend/database"
	"plastiwood-backend/datasync"
	"plastiwood-backend/ledger"
	"plastiwood-backend/middlewares"
	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderItemDTO struct {
	Name     string  `json:"name" validate:"required,min=1"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type OrderCreateDTO struct {
	CustomerName    string         `json:"customer_name" validate:"required,min=1"`
	CustomerPhone   string         `json:"customer_phone" validate:"omitempty"`
	CustomerEmail   string         `json:"customer_email" validate:"omitempty,email"`
	ShippingAddress string         `json:"shipping_address" validate:"omitempty"`
	OrderDate       string         `json:"order_date" validate:"required"`
	DeliveryDate    string         `json:"delivery_date" validate:"omitempty"`
	Items           []OrderItemDTO `json:"items" validate:"required,min=1,dive"`
}

type OrderUpdateDTO struct {
	Status       *string `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	DeliveryDate *string `json:"delivery_date" validate:"omitempty"`
}

// GET /api/orders
func GetOrders(c *fiber.Ctx) error {
	var orders []models.Order
	if err := database.DB.Preload("Items").
		Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(orders)
}

// POST /api/orders — manual order entry
func CreateOrder(c *fiber.Ctx) error {
	var in OrderCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	orderDate, err := parseDate(in.OrderDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order_date, want YYYY-MM-DD")
	}
	deliveryDate, err := parseOptionalDate(in.DeliveryDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid delivery_date, want YYYY-MM-DD")
	}

	var total float64
	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		total += float64(it.Quantity) * it.Price
		items[i] = models.OrderItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    utils.Round2(it.Price),
		}
	}

	order := models.Order{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerEmail:   in.CustomerEmail,
		ShippingAddress: in.ShippingAddress,
		OrderDate:       orderDate,
		DeliveryDate:    deliveryDate,
		Status:          models.OrderStatusPending,
		TotalAmount:     utils.Round2(total),
		CreatedFrom:     models.OrderSourceManual,
		Items:           items,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create order")
	}

	var out models.Order
	if err := database.DB.Preload("Items").First(&out, order.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload order")
	}

	datasync.Default.Append("orders", itoa(out.ID), out)
	logActivity(c, "create", "order", itoa(out.ID), out)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/orders/:id — status / delivery date; may mark the linked invoice paid
func UpdateOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var in OrderUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	var existing models.Order
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.DeliveryDate != nil {
		deliveryDate, err := parseOptionalDate(*in.DeliveryDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid delivery_date, want YYYY-MM-DD")
		}
		updates["delivery_date"] = deliveryDate
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update order")
		}
	}

	newStatus := existing.Status
	if in.Status != nil {
		newStatus = *in.Status
	}
	propagateToInvoice(existing, newStatus)

	var out models.Order
	if err := database.DB.Preload("Items").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload order")
	}

	datasync.Default.Replace("orders", itoa(out.ID), out)
	logActivity(c, "update", "order", itoa(out.ID), out)
	return c.JSON(out)
}

// propagateToInvoice marks a linked pending invoice paid when its order is
// delivered. The paid amount is settled to the invoice total so the stored
// pending amount reaches zero.
func propagateToInvoice(order models.Order, newStatus string) {
	if order.InvoiceID == nil {
		return
	}

	var invoice models.Invoice
	if err := database.DB.First(&invoice, "id = ?", *order.InvoiceID).Error; err != nil {
		return
	}

	next, changed := ledger.InvoiceStatusAfterOrderChange(order.Status, newStatus, invoice.Status)
	if !changed {
		return
	}
	if err := database.DB.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(map[string]any{
		"status":      next,
		"paid_amount": invoice.TotalAmount,
	}).Error; err != nil {
		return
	}
	invoice.Status = next
	invoice.PaidAmount = invoice.TotalAmount
	datasync.Default.Replace("invoices", itoa(invoice.ID), invoice)
}

// DELETE /api/orders/:id (owner only)
func DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Order
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Unlink the invoice side of the soft link before the order goes.
		if existing.InvoiceID != nil {
			if err := tx.Model(&models.Invoice{}).Where("id = ?", *existing.InvoiceID).
				Update("order_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete order")
	}

	datasync.Default.Remove("orders", itoa(existing.ID))
	logActivity(c, "delete", "order", itoa(existing.ID), existing)
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}
