package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/tusfactus/factus/internal/billing"
	"github.com/tusfactus/factus/internal/currency"
	"github.com/tusfactus/factus/internal/format"
	"github.com/tusfactus/factus/internal/httpx"
	"github.com/tusfactus/factus/internal/i18n"
	"github.com/tusfactus/factus/internal/middleware"
	"github.com/tusfactus/factus/internal/models"
	"github.com/tusfactus/factus/internal/numeric"
	"github.com/tusfactus/factus/internal/pdf"
	"github.com/tusfactus/factus/internal/view"
)

// InvoiceHandler owns the form page and the two draft operations. It holds
// no state: every request carries its own draft and nothing is persisted.
type InvoiceHandler struct{}

func NewInvoiceHandler() *InvoiceHandler { return &InvoiceHandler{} }

// renderPDF is swappable so tests can force a rendering failure.
var renderPDF = pdf.Render

// Page serves GET /, the invoice form.
func (h *InvoiceHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Languages":     i18n.Langs(),
		"LanguageNames": i18n.Names,
		"Currencies":    currency.Supported,
		"Item":          models.NewLineItem("item-1"),
	}
	if err := view.Render(w, r, "index.html", data); err != nil {
		log.Printf("render index: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

type lineFigures struct {
	ID     string `json:"id"`
	Base   string `json:"base"`
	Amount string `json:"amount"`
}

type totalsFigures struct {
	TaxBase   string `json:"tax_base"`
	TotalTax  string `json:"total_tax"`
	TotalIRPF string `json:"total_irpf"`
	Total     string `json:"total"`
}

// Totals serves POST /invoice/totals: recompute and format the draft's figures.
// The page displays these strings verbatim, so screen and PDF always agree:
// both go through the same Formatter.
func (h *InvoiceHandler) Totals(w http.ResponseWriter, r *http.Request) {
	inv, err := bindInvoice(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_draft", "")
		return
	}
	calcs, totals := billing.Calculate(inv.Items)
	f := format.New(middleware.LangFrom(r), middleware.CurrencyFrom(r))

	lines := make([]lineFigures, len(calcs))
	for i, c := range calcs {
		id := ""
		if i < len(inv.Items) {
			id = inv.Items[i].ID
		}
		lines[i] = lineFigures{ID: id, Base: f.Amount(c.Base), Amount: f.Amount(c.Total)}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"lines": lines,
		"totals": totalsFigures{
			TaxBase:   f.Amount(totals.Base),
			TotalTax:  f.Amount(totals.VAT),
			TotalIRPF: f.Amount(totals.IRPF),
			Total:     f.Amount(totals.Total),
		},
	})
}

// PDF serves POST /invoice/pdf, the synchronous export. An empty draft is refused
// with a localized message; a rendering failure maps to one generic
// localized error and no partial file is ever delivered.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	inv, err := bindInvoice(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_draft", "")
		return
	}
	if inv.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "empty_form", i18n.T(lang, "err_empty_form"))
		return
	}

	calcs, totals := billing.Calculate(inv.Items)
	doc := pdf.FromInvoice(inv, calcs, totals)
	res, err := renderPDF(doc, format.New(lang, middleware.CurrencyFrom(r)), lang)
	if err != nil {
		log.Printf("invoice pdf: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "render_failed", i18n.T(lang, "err_render"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(inv.Number)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Bytes)
}

// bindInvoice decodes a draft from a JSON body or a classic form post.
// Numeric fields pass through the keystroke sanitizer so hostile input
// cannot carry characters the form would never display.
func bindInvoice(r *http.Request) (models.Invoice, error) {
	var inv models.Invoice
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
			return inv, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return inv, err
		}
		inv = invoiceFromForm(r)
	}
	for i := range inv.Items {
		it := &inv.Items[i]
		it.Quantity = numeric.Sanitize(it.Quantity)
		it.UnitPrice = numeric.Sanitize(it.UnitPrice)
		it.Discount = numeric.Sanitize(it.Discount)
		it.VAT = numeric.Sanitize(it.VAT)
		it.IRPF = numeric.Sanitize(it.IRPF)
	}
	return inv, nil
}

func invoiceFromForm(r *http.Request) models.Invoice {
	get := r.Form.Get
	inv := models.Invoice{
		Number:    get("number"),
		IssueDate: get("issue_date"),
		DueDate:   get("due_date"),
		Seller:    partyFromForm(r, "seller"),
		Client:    partyFromForm(r, "client"),
		Notes:     get("notes"),
	}

	descs := r.Form["item_description"]
	qtys := r.Form["item_quantity"]
	prices := r.Form["item_price"]
	discounts := r.Form["item_discount"]
	vats := r.Form["item_vat"]
	irpfs := r.Form["item_irpf"]
	for i := 0; i < len(descs); i++ {
		inv.Items = append(inv.Items, models.LineItem{
			ID:          "item-" + strconv.Itoa(i+1),
			Description: descs[i],
			Quantity:    at(qtys, i),
			UnitPrice:   at(prices, i),
			Discount:    at(discounts, i),
			VAT:         at(vats, i),
			IRPF:        at(irpfs, i),
		})
	}
	return inv
}

func partyFromForm(r *http.Request, prefix string) models.Party {
	get := func(field string) string { return r.Form.Get(prefix + "_" + field) }
	return models.Party{
		Name:       get("name"),
		TaxID:      get("nif"),
		Phone:      get("phone"),
		Email:      get("email"),
		Address:    get("address"),
		City:       get("city"),
		PostalCode: get("postal_code"),
		Country:    get("country"),
		IBAN:       get("iban"),
	}
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}
