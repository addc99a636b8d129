// Package gst computes GST tax breakups for invoices and purchase bills.
//
// Intra-state supplies (billing state equals place of supply) split the GST
// evenly between CGST and SGST; inter-state supplies charge the whole amount
// as IGST. Rounding happens once at the boundary so the split always
// reconciles with the rounded total.
package gst

import "plastiwood-backend/utils"

// LineItem is the minimal shape the calculator needs from an invoice or
// purchase line.
type LineItem struct {
	Qty  int
	Rate float64
	GST  float64 // percent, e.g. 18
}

// Breakup holds the computed totals, all rounded to 2 decimals.
// Purchases leave CGST/SGST/IGST at zero.
type Breakup struct {
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	TotalGST   float64 `json:"total_gst"`
	GrandTotal float64 `json:"grand_total"`
}

// Calculate returns the GST breakup for an invoice. The billing state and
// place of supply are compared with a case-sensitive exact match.
func Calculate(items []LineItem, billingState, supplyState string) Breakup {
	var b Breakup
	var rawGST float64

	for _, item := range items {
		net := float64(item.Qty) * item.Rate
		b.Subtotal += net
		rawGST += net * item.GST / 100
	}

	b.Subtotal = utils.Round2(b.Subtotal)
	b.TotalGST = utils.Round2(rawGST)
	if billingState == supplyState {
		// The first half rounds from full precision, the second half takes
		// the remainder so CGST + SGST always equals the rounded total.
		b.CGST = utils.Round2(rawGST / 2)
		b.SGST = utils.Round2(b.TotalGST - b.CGST)
	} else {
		b.IGST = b.TotalGST
	}
	b.GrandTotal = utils.Round2(b.Subtotal + b.TotalGST)
	return b
}

// CalculatePurchase returns subtotal, total GST and grand total for a
// purchase bill. Purchases are never split into CGST/SGST/IGST.
func CalculatePurchase(items []LineItem) Breakup {
	var b Breakup
	for _, item := range items {
		net := float64(item.Qty) * item.Rate
		b.Subtotal += net
		b.TotalGST += net * item.GST / 100
	}
	b.Subtotal = utils.Round2(b.Subtotal)
	b.TotalGST = utils.Round2(b.TotalGST)
	b.GrandTotal = utils.Round2(b.Subtotal + b.TotalGST)
	return b
}
