package ledger_test

import (
	"os"
	"testing"
	"time"

	"plastiwood-backend/ledger"
	"plastiwood-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupTestDB connects to a dedicated test database. Set TEST_DATABASE_DSN
// (a GORM MySQL DSN) to run these tests; they are skipped otherwise.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../.env")

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set — skipping integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Supplier{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := db.Exec("DELETE FROM customers").Error; err != nil {
		t.Fatalf("failed to clean customers: %v", err)
	}
	if err := db.Exec("DELETE FROM suppliers").Error; err != nil {
		t.Fatalf("failed to clean suppliers: %v", err)
	}
	return db
}

func TestCustomerLedger_RecordAndReverse(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	customer := models.Customer{GSTIN: "27AAAAA0000A1Z5", Name: "Sharma Traders", State: "Maharashtra"}

	if err := ledger.RecordCustomerTransaction(db, customer, 1180, date); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := ledger.RecordCustomerTransaction(db, customer, 2360, date); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	var got models.Customer
	if err := db.First(&got, "gstin = ?", customer.GSTIN).Error; err != nil {
		t.Fatalf("customer not found after record: %v", err)
	}
	if got.TotalInvoices != 2 {
		t.Errorf("total invoices = %d, want 2", got.TotalInvoices)
	}
	if got.TotalAmount != 3540 {
		t.Errorf("total amount = %v, want 3540", got.TotalAmount)
	}

	if err := ledger.ReverseCustomerTransaction(db, customer.GSTIN, 2360); err != nil {
		t.Fatalf("reverse failed: %v", err)
	}
	if err := db.First(&got, "gstin = ?", customer.GSTIN).Error; err != nil {
		t.Fatalf("customer missing after partial reverse: %v", err)
	}
	if got.TotalInvoices != 1 || got.TotalAmount != 1180 {
		t.Errorf("after reverse: count=%d total=%v, want count=1 total=1180", got.TotalInvoices, got.TotalAmount)
	}
}

func TestCustomerLedger_ZeroCrossingDeletesRecord(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	customer := models.Customer{GSTIN: "29BBBBB1111B2Z6", Name: "Mehta Plastics"}
	if err := ledger.RecordCustomerTransaction(db, customer, 999.99, date); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if err := ledger.ReverseCustomerTransaction(db, customer.GSTIN, 999.99); err != nil {
		t.Fatalf("reverse failed: %v", err)
	}

	var count int64
	db.Model(&models.Customer{}).Where("gstin = ?", customer.GSTIN).Count(&count)
	if count != 0 {
		t.Errorf("customer record still present after zero-crossing reverse")
	}

	// Reversing again must be a silent no-op.
	if err := ledger.ReverseCustomerTransaction(db, customer.GSTIN, 999.99); err != nil {
		t.Errorf("repeat reverse on deleted customer returned error: %v", err)
	}
}

func TestSupplierLedger_RecordAndReverse(t *testing.T) {
	db := setupTestDB(t)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	supplier := models.Supplier{GSTIN: "24CCCCC2222C3Z7", Name: "Gujarat Polymers"}
	if err := ledger.RecordSupplierTransaction(db, supplier, 5000, date); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	var got models.Supplier
	if err := db.First(&got, "gstin = ?", supplier.GSTIN).Error; err != nil {
		t.Fatalf("supplier not found: %v", err)
	}
	if got.TotalPurchases != 1 || got.TotalAmount != 5000 {
		t.Errorf("count=%d total=%v, want count=1 total=5000", got.TotalPurchases, got.TotalAmount)
	}
	if got.LastTransactionDate == nil {
		t.Error("last transaction date not set")
	}

	if err := ledger.ReverseSupplierTransaction(db, supplier.GSTIN, 5000); err != nil {
		t.Fatalf("reverse failed: %v", err)
	}
	var count int64
	db.Model(&models.Supplier{}).Where("gstin = ?", supplier.GSTIN).Count(&count)
	if count != 0 {
		t.Error("supplier record still present after zero-crossing reverse")
	}
}
