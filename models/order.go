package models

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	OrderSourceSales  = "sales"
	OrderSourceManual = "manual"
)

type Order struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	CustomerName    string     `json:"customer_name" gorm:"not null"`
	CustomerPhone   string     `json:"customer_phone"`
	CustomerEmail   string     `json:"customer_email"`
	ShippingAddress string     `json:"shipping_address"`
	OrderDate       time.Time  `json:"order_date" gorm:"type:date;index"`
	DeliveryDate    *time.Time `json:"delivery_date" gorm:"type:date"`
	Status          string     `json:"status" gorm:"type:varchar(20);default:pending"`
	TotalAmount     float64    `json:"total_amount" gorm:"type:decimal(12,2)"`

	// Soft link to the invoice this order fulfils, and whether the order
	// came from a sale or was entered manually.
	InvoiceID   *uint  `json:"invoice_id"`
	CreatedFrom string `json:"created_from" gorm:"type:varchar(10);default:manual"`

	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"-" gorm:"index"`
	Name     string  `json:"name" gorm:"not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
	Price    float64 `json:"price" gorm:"type:decimal(10,2)"`

	// Generated column: quantity * price.
	Total float64 `json:"total" gorm:"->;-:migration"`
}
