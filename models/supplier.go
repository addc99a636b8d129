package models

import "time"

// Supplier is keyed by GSTIN and carries denormalized purchase aggregates
// maintained by the ledger package.
type Supplier struct {
	GSTIN               string     `json:"gstin" gorm:"column:gstin;primaryKey;size:15"`
	Name                string     `json:"name" gorm:"not null"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	Address             string     `json:"address"`
	State               string     `json:"state"`
	TotalPurchases      int        `json:"total_purchases"`
	TotalAmount         float64    `json:"total_amount" gorm:"type:decimal(12,2)"`
	LastTransactionDate *time.Time `json:"last_transaction_date" gorm:"type:date"`
}
