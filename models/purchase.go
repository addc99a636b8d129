package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

type Purchase struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	BillNumber    string     `json:"bill_number" gorm:"not null"`
	SupplierGSTIN string     `json:"supplier_gstin" gorm:"column:supplier_gstin;size:15;index"`
	SupplierName  string     `json:"supplier_name" gorm:"not null"`
	SupplierPhone string     `json:"supplier_phone"`
	Date          time.Time  `json:"date" gorm:"type:date;index"`
	DueDate       *time.Time `json:"due_date" gorm:"type:date"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20);default:pending"`
	TotalAmount   float64    `json:"total_amount" gorm:"type:decimal(12,2)"`

	// Optional scanned receipt (base64 blob + original filename).
	ReceiptFile     string `json:"receipt_file,omitempty" gorm:"type:longtext"`
	ReceiptFilename string `json:"receipt_filename,omitempty"`

	Items     []PurchaseItem `json:"items" gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
}

type PurchaseItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	PurchaseID uint    `json:"-" gorm:"index"`
	Name       string  `json:"name" gorm:"not null"`
	HSN        string  `json:"hsn" gorm:"column:hsn"`
	Qty        int     `json:"qty" gorm:"not null"`
	Size       string  `json:"size"`
	Color      string  `json:"color"`
	ColorCode  string  `json:"color_code"`
	Rate       float64 `json:"rate" gorm:"type:decimal(10,2)"`
	GST        float64 `json:"gst" gorm:"column:gst;default:18"`

	// Generated column: qty * rate * (1 + gst/100).
	Amount float64 `json:"amount" gorm:"->;-:migration"`
}
