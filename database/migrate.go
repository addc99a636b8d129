package database

import (
	"fmt"

	"plastiwood-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate for tables/columns/tag indexes
// - stored generated columns for derived amounts
// Derived amounts are never written by the application; the database
// computes them from qty/rate/gst so they cannot drift.
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.InventoryItem{},
			&models.Supplier{},
			&models.Customer{},
			&models.Purchase{},
			&models.PurchaseItem{},
			&models.Invoice{},
			&models.InvoiceItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.CompanyInfo{},
			&models.User{},
			&models.IdempotencyKey{},
			&models.ActivityLog{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// MySQL cannot convert an existing plain column to a generated one,
		// so these are tagged out of AutoMigrate and added here if missing.
		generated := []struct {
			table, column, typ, expr string
		}{
			{"inventory", "taxed_price", "decimal(10,2)", "price * (1 + gst/100)"},
			{"purchase_items", "amount", "decimal(10,2)", "qty * rate * (1 + gst/100)"},
			{"invoice_items", "amount", "decimal(10,2)", "qty * rate * (1 + gst/100)"},
			{"invoices", "pending_amount", "decimal(12,2)", "total_amount - paid_amount"},
			{"order_items", "total", "decimal(10,2)", "quantity * price"},
		}
		for _, g := range generated {
			if err := ensureGeneratedColumn(tx, g.table, g.column, g.typ, g.expr); err != nil {
				return fmt.Errorf("generated column %s.%s: %w", g.table, g.column, err)
			}
		}

		return nil
	})
}

func ensureGeneratedColumn(tx *gorm.DB, table, column, typ, expr string) error {
	var count int64
	err := tx.Raw(
		`SELECT COUNT(*) FROM information_schema.columns
		 WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?`,
		table, column,
	).Scan(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s GENERATED ALWAYS AS (%s) STORED",
		table, column, typ, expr)
	return tx.Exec(stmt).Error
}
