package models

import "strings"

// Invoice is the editable draft as the form holds it. Numeric item fields
// stay raw user text so partially typed values survive a round trip; they
// are only converted to numbers at calculation time.
type Invoice struct {
	Number    string `json:"number"`
	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date"`

	Seller Party `json:"seller"`
	Client Party `json:"client"`

	Items []LineItem `json:"items"`
	Notes string     `json:"notes"`
}

type LineItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Discount    string `json:"discount"`
	VAT         string `json:"vat"`
	IRPF        string `json:"irpf"`
}

// NewLineItem returns a blank item carrying the Spanish jurisdiction
// defaults (21% VAT, no withholding).
func NewLineItem(id string) LineItem {
	return LineItem{ID: id, VAT: "21", IRPF: "0"}
}

// Empty reports whether the user has entered anything at all. VAT and IRPF
// are excluded: they carry defaults on every fresh item and are not user
// input by themselves.
func (inv Invoice) Empty() bool {
	if !blank(inv.Number) || !blank(inv.IssueDate) || !blank(inv.DueDate) || !blank(inv.Notes) {
		return false
	}
	if !inv.Seller.Empty() || !inv.Client.Empty() {
		return false
	}
	for _, it := range inv.Items {
		if !blank(it.Description) || !blank(it.Quantity) || !blank(it.UnitPrice) || !blank(it.Discount) {
			return false
		}
	}
	return true
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
