// Package i18n holds the closed label dictionaries for the form and the
// printed invoice. Every supported language must carry the complete key
// set; a partial dictionary is a contract violation (enforced by tests).
package i18n

import "strings"

const Default = "es"

// Names maps each supported language tag to its own display name for the
// language selector.
var Names = map[string]string{
	"es": "Español",
	"en": "English",
	"ca": "Català",
}

// Langs returns the supported language tags in selector order.
func Langs() []string { return []string{"es", "en", "ca"} }

// Supported reports whether lang is one of the supported tags.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// T translates code for lang. Unknown languages fall back to the default
// dictionary; unknown codes fall back to the code itself so a missing
// label is visible instead of silently blank.
func T(lang, code string) string {
	dict, ok := translations[lang]
	if !ok {
		dict = translations[Default]
	}
	if msg, ok := dict[code]; ok {
		return msg
	}
	if msg, ok := translations[Default][code]; ok {
		return msg
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting to es.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexAny(tag, "-;"); i >= 0 {
			tag = tag[:i]
		}
		if Supported(tag) {
			return tag
		}
	}
	return Default
}

var translations = map[string]map[string]string{
	"es": {
		"invoice_number": "Número",
		"issue_date":     "Fecha de emisión",
		"due_date":       "Vencimiento",
		"your_data":      "Tus datos",
		"client_data":    "Datos del cliente",
		"name_company":   "Nombre / Empresa",
		"client_name":    "Nombre empresa o comercial",
		"nif":            "NIF",
		"phone":          "Teléfono",
		"email":          "Email",
		"address":        "Dirección",
		"city":           "Población",
		"postal_code":    "Código postal",
		"country":        "País",
		"iban":           "IBAN",
		"items":          "Partidas",
		"add_item":       "Añadir partida",
		"description":    "Descripción",
		"quantity":       "Cantidad",
		"price":          "Precio",
		"discount":       "Descuento",
		"tax":            "IVA",
		"irpf":           "IRPF",
		"amount":         "Importe",
		"tax_base":       "Base imponible",
		"total_tax":      "IVA total",
		"total_irpf":     "IRPF total",
		"total":          "Total",
		"download_pdf":   "Descargar factura",
		"notes":          "Notas adicionales",
		"theme":          "Tema",
		"language":       "Idioma",
		"currency":       "Moneda",
		"err_empty_form": "Añade algún dato a la factura antes de descargarla",
		"err_render":     "No se ha podido generar el PDF, inténtalo de nuevo",
	},
	"en": {
		"invoice_number": "Number",
		"issue_date":     "Issue date",
		"due_date":       "Due date",
		"your_data":      "Your data",
		"client_data":    "Client data",
		"name_company":   "Name / Company",
		"client_name":    "Business or trade name",
		"nif":            "Tax ID",
		"phone":          "Phone",
		"email":          "Email",
		"address":        "Address",
		"city":           "City",
		"postal_code":    "Postal code",
		"country":        "Country",
		"iban":           "IBAN",
		"items":          "Items",
		"add_item":       "Add item",
		"description":    "Description",
		"quantity":       "Qty",
		"price":          "Price",
		"discount":       "Disc.",
		"tax":            "VAT",
		"irpf":           "Withholding",
		"amount":         "Amount",
		"tax_base":       "Tax base",
		"total_tax":      "Total VAT",
		"total_irpf":     "Total withholding",
		"total":          "Total",
		"download_pdf":   "Download invoice",
		"notes":          "Additional notes",
		"theme":          "Theme",
		"language":       "Language",
		"currency":       "Currency",
		"err_empty_form": "Add some invoice data before downloading",
		"err_render":     "The PDF could not be generated, please try again",
	},
	"ca": {
		"invoice_number": "Número",
		"issue_date":     "Data d'emissió",
		"due_date":       "Venciment",
		"your_data":      "Les teves dades",
		"client_data":    "Dades del client",
		"name_company":   "Nom / Empresa",
		"client_name":    "Nom empresa o comercial",
		"nif":            "NIF",
		"phone":          "Telèfon",
		"email":          "Email",
		"address":        "Adreça",
		"city":           "Població",
		"postal_code":    "Codi postal",
		"country":        "País",
		"iban":           "IBAN",
		"items":          "Partides",
		"add_item":       "Afegir partida",
		"description":    "Descripció",
		"quantity":       "Quantitat",
		"price":          "Preu",
		"discount":       "Descompte",
		"tax":            "IVA",
		"irpf":           "IRPF",
		"amount":         "Import",
		"tax_base":       "Base imposable",
		"total_tax":      "IVA total",
		"total_irpf":     "IRPF total",
		"total":          "Total",
		"download_pdf":   "Descarregar factura",
		"notes":          "Notes addicionals",
		"theme":          "Tema",
		"language":       "Idioma",
		"currency":       "Moneda",
		"err_empty_form": "Afegeix alguna dada a la factura abans de descarregar-la",
		"err_render":     "No s'ha pogut generar el PDF, torna-ho a provar",
	},
}
