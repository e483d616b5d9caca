package utils

import "github.com/shopspring/decimal"

// GstBreakup is the tax split for one taxable amount. Intra-state
// supplies carry CGST+SGST, inter-state supplies carry IGST.
type GstBreakup struct {
	Taxable decimal.Decimal `json:"taxable"`
	Cgst    decimal.Decimal `json:"cgst"`
	Sgst    decimal.Decimal `json:"sgst"`
	Igst    decimal.Decimal `json:"igst"`
	Total   decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)
var two = decimal.NewFromInt(2)

// SplitGST computes the GST on a taxable amount at the given percent rate.
func SplitGST(taxable, rate decimal.Decimal, interState bool) GstBreakup {
	tax := taxable.Mul(rate).Div(hundred).Round(2)

	breakup := GstBreakup{
		Taxable: taxable.Round(2),
		Cgst:    decimal.Zero,
		Sgst:    decimal.Zero,
		Igst:    decimal.Zero,
	}

	if interState {
		breakup.Igst = tax
	} else {
		// Half-rate each; an odd paisa lands on CGST
		half := tax.Div(two).Round(2)
		breakup.Cgst = half
		breakup.Sgst = tax.Sub(half)
	}

	breakup.Total = breakup.Taxable.Add(tax)
	return breakup
}

// GstFromInclusive extracts the taxable base out of a GST-inclusive amount.
func GstFromInclusive(gross, rate decimal.Decimal, interState bool) GstBreakup {
	taxable := gross.Mul(hundred).Div(hundred.Add(rate)).Round(2)
	return SplitGST(taxable, rate, interState)
}

// gstSlabs maps item categories to their GST percent slab. Garment job
// work sits in the 5% slab, made-up textile articles in 12%.
var gstSlabs = map[string]int64{
	"stitching":   5,
	"job_work":    5,
	"fabric":      5,
	"thread":      12,
	"garment":     12,
	"accessories": 18,
	"machinery":   18,
}

// RateForCategory returns the slab rate for a category, defaulting to 5%.
func RateForCategory(category string) decimal.Decimal {
	if rate, ok := gstSlabs[category]; ok {
		return decimal.NewFromInt(rate)
	}
	return decimal.NewFromInt(5)
}
