package models

import "time"

// Customer is keyed by GSTIN and carries denormalized invoice aggregates
// maintained by the ledger package.
type Customer struct {
	GSTIN               string     `json:"gstin" gorm:"column:gstin;primaryKey;size:15"`
	Name                string     `json:"name" gorm:"not null"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	Address             string     `json:"address"`
	State               string     `json:"state"`
	TotalInvoices       int        `json:"total_invoices"`
	TotalAmount         float64    `json:"total_amount" gorm:"type:decimal(12,2)"`
	LastTransactionDate *time.Time `json:"last_transaction_date" gorm:"type:date"`
}
