package models

// Party is either the issuing seller or the receiving client. Every field
// is optional free text; an empty field is simply not rendered. IBAN is
// only meaningful for the seller.
type Party struct {
	Name       string `json:"name"`
	TaxID      string `json:"tax_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IBAN       string `json:"iban"`
}

func (p Party) Empty() bool {
	return blank(p.Name) && blank(p.TaxID) && blank(p.Phone) && blank(p.Email) &&
		blank(p.Address) && blank(p.City) && blank(p.PostalCode) && blank(p.Country) && blank(p.IBAN)
}
