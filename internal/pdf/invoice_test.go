package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tusfactus/factus/internal/billing"
	"github.com/tusfactus/factus/internal/format"
	"github.com/tusfactus/factus/internal/i18n"
	"github.com/tusfactus/factus/internal/models"
)

func esLabel(code string) string { return i18n.T("es", code) }

func renderDraft(t *testing.T, inv models.Invoice) *Result {
	t.Helper()
	calcs, totals := billing.Calculate(inv.Items)
	res, err := Render(FromInvoice(inv, calcs, totals), format.New("es", "EUR"), "es")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return res
}

func TestPartyLinesNameOnly(t *testing.T) {
	lines := partyLines(models.Party{Name: "ACME SL"}, esLabel, true)
	if len(lines) != 1 || lines[0] != "ACME SL" {
		t.Fatalf("expected exactly the name line, got %#v", lines)
	}
}

func TestPartyLinesSkipEmptyFields(t *testing.T) {
	p := models.Party{
		Name:    "ACME SL",
		TaxID:   "B12345678",
		Address: "",
		Country: "España",
		Email:   "   ",
	}
	lines := partyLines(p, esLabel, true)
	want := []string{"ACME SL", "NIF: B12345678", "España"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %#v, want %#v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestPartyLinesCityPostalJoin(t *testing.T) {
	lines := partyLines(models.Party{PostalCode: "08001", City: "Barcelona"}, esLabel, false)
	if len(lines) != 1 || lines[0] != "08001 Barcelona" {
		t.Fatalf("expected joined postal/city line, got %#v", lines)
	}
	lines = partyLines(models.Party{City: "Barcelona"}, esLabel, false)
	if len(lines) != 1 || lines[0] != "Barcelona" {
		t.Fatalf("city alone should render without padding, got %#v", lines)
	}
	if got := partyLines(models.Party{}, esLabel, false); len(got) != 0 {
		t.Fatalf("empty party should render no lines, got %#v", got)
	}
}

func TestPartyLinesIBANOnlyForSeller(t *testing.T) {
	p := models.Party{IBAN: "ES00 0000 0000 0000"}
	if got := partyLines(p, esLabel, false); len(got) != 0 {
		t.Fatalf("client block must not print IBAN, got %#v", got)
	}
	if got := partyLines(p, esLabel, true); len(got) != 1 || !strings.HasPrefix(got[0], "IBAN: ") {
		t.Fatalf("seller block should print IBAN line, got %#v", got)
	}
}

func TestRowFillParity(t *testing.T) {
	// Stripe color is keyed on the pre-pagination index, so it is a pure
	// function of the row number regardless of where pages break.
	for i := 0; i < 100; i++ {
		if rowFill(i) != (i%2 == 1) {
			t.Fatalf("rowFill(%d) = %v", i, rowFill(i))
		}
	}
}

func TestRenderSinglePage(t *testing.T) {
	inv := models.Invoice{
		Number:    "2024-001",
		IssueDate: "2024-03-01",
		DueDate:   "2024-03-31",
		Seller:    models.Party{Name: "ACME SL", TaxID: "B12345678", City: "Barcelona", PostalCode: "08001"},
		Client:    models.Party{Name: "Cliente SA"},
		Items: []models.LineItem{
			{Description: "Consultoría", Quantity: "2", UnitPrice: "100", Discount: "10", VAT: "21", IRPF: "15"},
		},
		Notes: "Pago por transferencia.",
	}
	res := renderDraft(t, inv)
	if res.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", res.Pages)
	}
	if !bytes.HasPrefix(res.Bytes, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestRenderPaginates(t *testing.T) {
	long := strings.Repeat("línea de detalle bastante larga que obliga a envolver el texto ", 3)
	inv := models.Invoice{Number: "2024-002", Seller: models.Party{Name: "ACME SL"}}
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, models.LineItem{
			ID:          fmt.Sprintf("it-%d", i),
			Description: long,
			Quantity:    "1",
			UnitPrice:   "10",
			VAT:         "21",
		})
	}
	res := renderDraft(t, inv)
	if res.Pages < 2 {
		t.Fatalf("expected pagination across pages, got %d", res.Pages)
	}
}

func TestRenderDeterministic(t *testing.T) {
	inv := models.Invoice{
		Number: "A-1",
		Seller: models.Party{Name: "ACME SL"},
		Items:  []models.LineItem{{Description: "Servicio", Quantity: "1", UnitPrice: "50", VAT: "21"}},
	}
	a := renderDraft(t, inv)
	b := renderDraft(t, inv)
	if !bytes.Equal(a.Bytes, b.Bytes) {
		t.Fatalf("same input must produce identical output")
	}
}

func TestRenderFailureRecovered(t *testing.T) {
	inv := models.Invoice{
		Number: "A-1",
		Items:  []models.LineItem{{Description: "Servicio", Quantity: "1", UnitPrice: "5", VAT: "21"}},
	}
	calcs, totals := billing.Calculate(inv.Items)
	// a nil Formatter makes the drawing surface panic mid-layout
	res, err := Render(FromInvoice(inv, calcs, totals), nil, "es")
	if res != nil {
		t.Fatalf("no partial document must escape a failed render, got %d bytes", len(res.Bytes))
	}
	if !errors.Is(err, ErrRender) {
		t.Fatalf("err = %v, want ErrRender", err)
	}
}

func TestTableBreaksBeforeHeaderBand(t *testing.T) {
	// starting the items section with almost no room left must move the
	// title and band to a fresh page instead of printing into the margin
	l := newLayout(format.New("es", "EUR"), "es")
	doc := Document{Lines: []Line{{Description: "x", Calc: billing.Calculation{Qty: 1}}}}
	l.table(doc, l.bottom()-4)
	if got := l.pdf.PageNo(); got != 2 {
		t.Fatalf("expected items section on a fresh page, got page %d", got)
	}
}

func TestFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2024-001", "factura-2024-001.pdf"},
		{"", "factura-draft.pdf"},
		{"   ", "factura-draft.pdf"},
		{"FAC 07/2024", "factura-FAC-07-2024.pdf"},
		{"../../etc", "factura-etc.pdf"},
	}
	for _, c := range cases {
		if got := Filename(c.in); got != c.want {
			t.Fatalf("Filename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
