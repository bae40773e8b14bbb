// Package billing derives per-line and invoice-level amounts from the raw
// text the form holds. All functions are pure; the draft is never mutated.
package billing

import (
	"github.com/tusfactus/factus/internal/models"
	"github.com/tusfactus/factus/internal/numeric"
)

// Calculation holds the derived figures for one line item. Percentages are
// the clamped values actually used, not the raw stored text.
type Calculation struct {
	Price       float64
	Qty         float64
	DiscountPct float64
	VATPct      float64
	IRPFPct     float64

	Base  float64
	VAT   float64
	IRPF  float64
	Total float64
}

// Totals aggregates an invoice. Total always equals the sum of the line
// totals: the same terms are summed, nothing is rounded before summation.
type Totals struct {
	Base  float64
	VAT   float64
	IRPF  float64
	Total float64
}

// Calculate derives a Calculation per item, order-preserving, plus the
// invoice totals. Quantities and prices are floored at zero, percentages
// clamped to [0,100]; clamping happens here so invalid typed values remain
// visible for editing but never corrupt the figures.
func Calculate(items []models.LineItem) ([]Calculation, Totals) {
	calcs := make([]Calculation, len(items))
	var totals Totals
	for i, it := range items {
		c := calculateItem(it)
		calcs[i] = c
		totals.Base += c.Base
		totals.VAT += c.VAT
		totals.IRPF += c.IRPF
	}
	totals.Total = totals.Base + totals.VAT - totals.IRPF
	return calcs, totals
}

func calculateItem(it models.LineItem) Calculation {
	c := Calculation{
		Price:       floor0(numeric.ParseNumber(it.UnitPrice)),
		Qty:         floor0(numeric.ParseNumber(it.Quantity)),
		DiscountPct: clampPct(numeric.ParseNumber(it.Discount)),
		VATPct:      clampPct(numeric.ParseNumber(it.VAT)),
		IRPFPct:     clampPct(numeric.ParseNumber(it.IRPF)),
	}
	c.Base = c.Price * c.Qty * (1 - c.DiscountPct/100)
	c.VAT = c.Base * c.VATPct / 100
	c.IRPF = c.Base * c.IRPFPct / 100
	c.Total = c.Base + c.VAT - c.IRPF
	return c
}

func floor0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
