// Package ledger keeps the denormalized Customer/Supplier rollups consistent
// with the invoices and purchases that reference them, and applies the
// status propagation rules between linked invoices and orders.
package ledger

import (
	"errors"
	"time"

	"plastiwood-backend/models"
	"plastiwood-backend/utils"

	"gorm.io/gorm"
)

// Aggregate is the rollup state shared by Customer and Supplier records:
// a transaction count, a running amount, and the last transaction date.
type Aggregate struct {
	Count       int
	TotalAmount float64
	LastDate    *time.Time
}

// Record adds one transaction to the rollup.
func (a *Aggregate) Record(amount float64, date time.Time) {
	a.Count++
	a.TotalAmount = utils.Round2(a.TotalAmount + amount)
	d := date
	a.LastDate = &d
}

// Reverse removes one transaction from the rollup. The count and amount are
// clamped at zero, so reversing more than was recorded is a no-op instead of
// driving the rollup negative. It reports whether the owning record should
// be deleted (count reached zero).
func (a *Aggregate) Reverse(amount float64) (remove bool) {
	if a.Count <= 0 {
		a.Count = 0
		return false
	}
	a.Count--
	a.TotalAmount = utils.Round2(a.TotalAmount - amount)
	if a.TotalAmount < 0 {
		a.TotalAmount = 0
	}
	return a.Count == 0
}

// RecordCustomerTransaction upserts the customer keyed by its GSTIN:
// contact fields are refreshed and the invoice rollup advances by amount.
func RecordCustomerTransaction(db *gorm.DB, customer models.Customer, amount float64, date time.Time) error {
	var existing models.Customer
	err := db.First(&existing, "gstin = ?", customer.GSTIN).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		agg := Aggregate{}
		agg.Record(amount, date)
		customer.TotalInvoices = agg.Count
		customer.TotalAmount = agg.TotalAmount
		customer.LastTransactionDate = agg.LastDate
		return db.Create(&customer).Error
	}
	if err != nil {
		return err
	}

	agg := Aggregate{Count: existing.TotalInvoices, TotalAmount: existing.TotalAmount, LastDate: existing.LastTransactionDate}
	agg.Record(amount, date)
	return db.Model(&models.Customer{}).Where("gstin = ?", customer.GSTIN).Updates(map[string]any{
		"name":                  customer.Name,
		"phone":                 customer.Phone,
		"email":                 customer.Email,
		"address":               customer.Address,
		"state":                 customer.State,
		"total_invoices":        agg.Count,
		"total_amount":          agg.TotalAmount,
		"last_transaction_date": agg.LastDate,
	}).Error
}

// ReverseCustomerTransaction backs one invoice out of the customer rollup,
// deleting the customer entirely when its last invoice is reversed.
// A missing customer is treated as already reversed.
func ReverseCustomerTransaction(db *gorm.DB, gstin string, amount float64) error {
	var existing models.Customer
	err := db.First(&existing, "gstin = ?", gstin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	agg := Aggregate{Count: existing.TotalInvoices, TotalAmount: existing.TotalAmount, LastDate: existing.LastTransactionDate}
	if agg.Reverse(amount) {
		return db.Delete(&models.Customer{}, "gstin = ?", gstin).Error
	}
	return db.Model(&models.Customer{}).Where("gstin = ?", gstin).Updates(map[string]any{
		"total_invoices": agg.Count,
		"total_amount":   agg.TotalAmount,
	}).Error
}

// RecordSupplierTransaction upserts the supplier keyed by its GSTIN and
// advances the purchase rollup by amount.
func RecordSupplierTransaction(db *gorm.DB, supplier models.Supplier, amount float64, date time.Time) error {
	var existing models.Supplier
	err := db.First(&existing, "gstin = ?", supplier.GSTIN).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		agg := Aggregate{}
		agg.Record(amount, date)
		supplier.TotalPurchases = agg.Count
		supplier.TotalAmount = agg.TotalAmount
		supplier.LastTransactionDate = agg.LastDate
		return db.Create(&supplier).Error
	}
	if err != nil {
		return err
	}

	agg := Aggregate{Count: existing.TotalPurchases, TotalAmount: existing.TotalAmount, LastDate: existing.LastTransactionDate}
	agg.Record(amount, date)
	return db.Model(&models.Supplier{}).Where("gstin = ?", supplier.GSTIN).Updates(map[string]any{
		"name":                  supplier.Name,
		"phone":                 supplier.Phone,
		"email":                 supplier.Email,
		"address":               supplier.Address,
		"state":                 supplier.State,
		"total_purchases":       agg.Count,
		"total_amount":          agg.TotalAmount,
		"last_transaction_date": agg.LastDate,
	}).Error
}

// ReverseSupplierTransaction backs one purchase out of the supplier rollup,
// deleting the supplier when its last purchase is reversed.
func ReverseSupplierTransaction(db *gorm.DB, gstin string, amount float64) error {
	var existing models.Supplier
	err := db.First(&existing, "gstin = ?", gstin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	agg := Aggregate{Count: existing.TotalPurchases, TotalAmount: existing.TotalAmount, LastDate: existing.LastTransactionDate}
	if agg.Reverse(amount) {
		return db.Delete(&models.Supplier{}, "gstin = ?", gstin).Error
	}
	return db.Model(&models.Supplier{}).Where("gstin = ?", gstin).Updates(map[string]any{
		"total_purchases": agg.Count,
		"total_amount":    agg.TotalAmount,
	}).Error
}
