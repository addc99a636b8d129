package ledger_test

import (
	"testing"
	"time"

	"plastiwood-backend/ledger"
	"plastiwood-backend/models"
)

func TestAggregate_RecordThenReverseRestoresState(t *testing.T) {
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	agg := ledger.Aggregate{Count: 3, TotalAmount: 4500.50}
	before := agg

	agg.Record(1180, date)
	if agg.Count != 4 {
		t.Fatalf("count after record = %d, want 4", agg.Count)
	}
	if agg.TotalAmount != 5680.50 {
		t.Fatalf("total after record = %v, want 5680.50", agg.TotalAmount)
	}
	if agg.LastDate == nil || !agg.LastDate.Equal(date) {
		t.Fatalf("last date after record = %v, want %v", agg.LastDate, date)
	}

	remove := agg.Reverse(1180)
	if remove {
		t.Fatal("reverse flagged removal with transactions remaining")
	}
	if agg.Count != before.Count || agg.TotalAmount != before.TotalAmount {
		t.Errorf("reverse did not restore state: got count=%d total=%v, want count=%d total=%v",
			agg.Count, agg.TotalAmount, before.Count, before.TotalAmount)
	}
}

func TestAggregate_ReversingLastTransactionFlagsRemoval(t *testing.T) {
	agg := ledger.Aggregate{}
	agg.Record(999.99, time.Now())

	if !agg.Reverse(999.99) {
		t.Error("reversing the only transaction should flag the record for removal")
	}
	if agg.Count != 0 {
		t.Errorf("count = %d, want 0", agg.Count)
	}
}

func TestAggregate_RepeatReversalIsNoOp(t *testing.T) {
	agg := ledger.Aggregate{}
	agg.Record(500, time.Now())
	agg.Reverse(500)

	// A second reversal must not drive anything negative.
	if agg.Reverse(500) {
		t.Error("repeat reversal flagged removal again")
	}
	if agg.Count != 0 {
		t.Errorf("count after repeat reversal = %d, want 0", agg.Count)
	}
	if agg.TotalAmount < 0 {
		t.Errorf("total after repeat reversal = %v, want >= 0", agg.TotalAmount)
	}
}

func TestAggregate_AmountClampsAtZero(t *testing.T) {
	agg := ledger.Aggregate{Count: 2, TotalAmount: 100}

	// Reversing more than was recorded clamps instead of going negative.
	agg.Reverse(250)
	if agg.TotalAmount != 0 {
		t.Errorf("total = %v, want clamped to 0", agg.TotalAmount)
	}
	if agg.Count != 1 {
		t.Errorf("count = %d, want 1", agg.Count)
	}
}

func TestOrderStatusAfterInvoiceChange(t *testing.T) {
	tests := []struct {
		name        string
		prev, next  string
		orderStatus string
		want        string
		wantChange  bool
	}{
		{
			name: "pending to paid moves pending order to processing",
			prev: models.InvoiceStatusPending, next: models.InvoiceStatusPaid,
			orderStatus: models.OrderStatusPending,
			want:        models.OrderStatusProcessing, wantChange: true,
		},
		{
			name: "no-op save of paid invoice leaves order alone",
			prev: models.InvoiceStatusPaid, next: models.InvoiceStatusPaid,
			orderStatus: models.OrderStatusProcessing,
			want:        models.OrderStatusProcessing, wantChange: false,
		},
		{
			name: "paid invoice does not touch shipped order",
			prev: models.InvoiceStatusPending, next: models.InvoiceStatusPaid,
			orderStatus: models.OrderStatusShipped,
			want:        models.OrderStatusShipped, wantChange: false,
		},
		{
			name: "partial payment does not advance the order",
			prev: models.InvoiceStatusPending, next: models.InvoiceStatusPartial,
			orderStatus: models.OrderStatusPending,
			want:        models.OrderStatusPending, wantChange: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := ledger.OrderStatusAfterInvoiceChange(tc.prev, tc.next, tc.orderStatus)
			if got != tc.want || changed != tc.wantChange {
				t.Errorf("got (%q, %v), want (%q, %v)", got, changed, tc.want, tc.wantChange)
			}
		})
	}
}

func TestInvoiceStatusAfterOrderChange(t *testing.T) {
	tests := []struct {
		name          string
		prev, next    string
		invoiceStatus string
		want          string
		wantChange    bool
	}{
		{
			name: "delivery marks pending invoice paid",
			prev: models.OrderStatusShipped, next: models.OrderStatusDelivered,
			invoiceStatus: models.InvoiceStatusPending,
			want:          models.InvoiceStatusPaid, wantChange: true,
		},
		{
			name: "delivery leaves partially paid invoice alone",
			prev: models.OrderStatusShipped, next: models.OrderStatusDelivered,
			invoiceStatus: models.InvoiceStatusPartial,
			want:          models.InvoiceStatusPartial, wantChange: false,
		},
		{
			name: "re-saving a delivered order does not re-fire",
			prev: models.OrderStatusDelivered, next: models.OrderStatusDelivered,
			invoiceStatus: models.InvoiceStatusPending,
			want:          models.InvoiceStatusPending, wantChange: false,
		},
		{
			name: "shipping does not touch the invoice",
			prev: models.OrderStatusProcessing, next: models.OrderStatusShipped,
			invoiceStatus: models.InvoiceStatusPending,
			want:          models.InvoiceStatusPending, wantChange: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := ledger.InvoiceStatusAfterOrderChange(tc.prev, tc.next, tc.invoiceStatus)
			if got != tc.want || changed != tc.wantChange {
				t.Errorf("got (%q, %v), want (%q, %v)", got, changed, tc.want, tc.wantChange)
			}
		})
	}
}
