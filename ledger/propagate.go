package ledger

import "plastiwood-backend/models"

// Status propagation between a sale's invoice and its linked order is a pair
// of one-directional rules, each gated on an actual status transition so
// re-saving with the same status never causes a write.

// OrderStatusAfterInvoiceChange returns the status the linked order should
// move to after an invoice status change, and whether a write is needed.
// Rule: invoice becomes paid while the order is still pending ⇒ processing.
func OrderStatusAfterInvoiceChange(prevInvoiceStatus, newInvoiceStatus, orderStatus string) (string, bool) {
	if newInvoiceStatus == prevInvoiceStatus {
		return orderStatus, false
	}
	if newInvoiceStatus == models.InvoiceStatusPaid && orderStatus == models.OrderStatusPending {
		return models.OrderStatusProcessing, true
	}
	return orderStatus, false
}

// InvoiceStatusAfterOrderChange returns the status the linked invoice should
// move to after an order status change, and whether a write is needed.
// Rule: order becomes delivered while the invoice is still pending ⇒ paid.
func InvoiceStatusAfterOrderChange(prevOrderStatus, newOrderStatus, invoiceStatus string) (string, bool) {
	if newOrderStatus == prevOrderStatus {
		return invoiceStatus, false
	}
	if newOrderStatus == models.OrderStatusDelivered && invoiceStatus == models.InvoiceStatusPending {
		return models.InvoiceStatusPaid, true
	}
	return invoiceStatus, false
}
