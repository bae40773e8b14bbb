package billing

import (
	"math"
	"testing"

	"github.com/tusfactus/factus/internal/models"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCalculateSingleItem(t *testing.T) {
	items := []models.LineItem{{
		UnitPrice: "100",
		Quantity:  "2",
		Discount:  "10",
		VAT:       "21",
		IRPF:      "0",
	}}
	calcs, totals := Calculate(items)
	if len(calcs) != 1 {
		t.Fatalf("expected 1 calculation, got %d", len(calcs))
	}
	c := calcs[0]
	if !almostEqual(c.Base, 180) {
		t.Fatalf("base = %v, want 180", c.Base)
	}
	if !almostEqual(c.VAT, 37.8) {
		t.Fatalf("vat = %v, want 37.8", c.VAT)
	}
	if !almostEqual(c.IRPF, 0) {
		t.Fatalf("irpf = %v, want 0", c.IRPF)
	}
	if !almostEqual(c.Total, 217.8) {
		t.Fatalf("line total = %v, want 217.8", c.Total)
	}
	if !almostEqual(totals.Base, 180) || !almostEqual(totals.VAT, 37.8) || !almostEqual(totals.Total, 217.8) {
		t.Fatalf("totals = %+v, want single-line values", totals)
	}
}

func TestTotalsEqualSumOfLineTotals(t *testing.T) {
	items := []models.LineItem{
		{UnitPrice: "19,90", Quantity: "3", Discount: "5", VAT: "21", IRPF: "15"},
		{UnitPrice: "1.234,56", Quantity: "1", VAT: "10"},
		{UnitPrice: "0,01", Quantity: "1000", VAT: "4", IRPF: "7"},
		{UnitPrice: "garbage", Quantity: "2", VAT: "21"},
		{},
	}
	calcs, totals := Calculate(items)
	var sum float64
	for _, c := range calcs {
		sum += c.Total
	}
	if !almostEqual(sum, totals.Total) {
		t.Fatalf("sum of line totals %v != totals.Total %v", sum, totals.Total)
	}
}

func TestClamping(t *testing.T) {
	items := []models.LineItem{{
		UnitPrice: "-50",
		Quantity:  "-2",
		Discount:  "150",
		VAT:       "-3",
		IRPF:      "999",
	}}
	calcs, _ := Calculate(items)
	c := calcs[0]
	if c.Price != 0 || c.Qty != 0 {
		t.Fatalf("negative price/qty must floor to 0: %+v", c)
	}
	if c.DiscountPct != 100 || c.VATPct != 0 || c.IRPFPct != 100 {
		t.Fatalf("percentages must clamp to [0,100]: %+v", c)
	}
}

func TestOrderPreserved(t *testing.T) {
	items := []models.LineItem{
		{UnitPrice: "1", Quantity: "1"},
		{UnitPrice: "2", Quantity: "1"},
		{UnitPrice: "3", Quantity: "1"},
	}
	calcs, _ := Calculate(items)
	for i, want := range []float64{1, 2, 3} {
		if !almostEqual(calcs[i].Base, want) {
			t.Fatalf("calc %d base = %v, want %v", i, calcs[i].Base, want)
		}
	}
}

func TestEmptySequence(t *testing.T) {
	calcs, totals := Calculate(nil)
	if len(calcs) != 0 {
		t.Fatalf("expected no calculations")
	}
	if totals != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
