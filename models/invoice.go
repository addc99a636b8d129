package models

import "time"

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// Invoice is a GST sales invoice. Customer details are denormalized onto the
// row (the Customer record only tracks aggregates). BillingState vs
// PlaceOfSupply decides the CGST/SGST vs IGST split.
type Invoice struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CustomerGSTIN   string    `json:"customer_gstin" gorm:"column:customer_gstin;size:15;index"`
	CustomerName    string    `json:"customer_name" gorm:"not null"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerAddress string    `json:"customer_address"`
	BillingState    string    `json:"state"`
	PlaceOfSupply   string    `json:"place_of_supply"`
	Date            time.Time `json:"date" gorm:"type:date;index"`
	Status          string    `json:"status" gorm:"type:varchar(20);default:pending"`
	TotalAmount     float64   `json:"total_amount" gorm:"type:decimal(12,2)"`
	PaidAmount      float64   `json:"paid_amount" gorm:"type:decimal(12,2)"`

	// Generated column: total_amount - paid_amount.
	PendingAmount float64 `json:"pending_amount" gorm:"->;-:migration"`

	// Soft link to the order created from this sale.
	OrderID *uint `json:"order_id"`

	Items     []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time     `json:"created_at"`
}

type InvoiceItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	InvoiceID uint    `json:"-" gorm:"index"`
	Name      string  `json:"name" gorm:"not null"`
	HSN       string  `json:"hsn" gorm:"column:hsn"`
	Qty       int     `json:"qty" gorm:"not null"`
	Rate      float64 `json:"rate" gorm:"type:decimal(10,2)"`
	GST       float64 `json:"gst" gorm:"column:gst;default:18"`

	// Generated column: qty * rate * (1 + gst/100).
	Amount float64 `json:"amount" gorm:"->;-:migration"`
}
