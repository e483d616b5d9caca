package services

import (
	"stitch-erp/models"
	"stitch-erp/utils"

	"github.com/shopspring/decimal"
)

// OrderTotals is the computed money summary of one order
type OrderTotals struct {
	Subtotal   decimal.Decimal
	CgstAmount decimal.Decimal
	SgstAmount decimal.Decimal
	IgstAmount decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeOrderTotals fills LineAmount and TaxAmount on every item and
// returns the order-level totals. Tax is split per line, the way a GST
// invoice carries it, then summed.
func ComputeOrderTotals(items []models.OrderItem, interState bool) OrderTotals {
	totals := OrderTotals{
		Subtotal:   decimal.Zero,
		CgstAmount: decimal.Zero,
		SgstAmount: decimal.Zero,
		IgstAmount: decimal.Zero,
	}

	for i := range items {
		lineAmount := items[i].Quantity.Mul(items[i].Rate).Round(2)
		breakup := utils.SplitGST(lineAmount, items[i].GstRate, interState)

		items[i].LineAmount = lineAmount
		items[i].TaxAmount = breakup.Cgst.Add(breakup.Sgst).Add(breakup.Igst)

		totals.Subtotal = totals.Subtotal.Add(lineAmount)
		totals.CgstAmount = totals.CgstAmount.Add(breakup.Cgst)
		totals.SgstAmount = totals.SgstAmount.Add(breakup.Sgst)
		totals.IgstAmount = totals.IgstAmount.Add(breakup.Igst)
	}

	totals.GrandTotal = totals.Subtotal.
		Add(totals.CgstAmount).
		Add(totals.SgstAmount).
		Add(totals.IgstAmount)

	return totals
}
