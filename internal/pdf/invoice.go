// Package pdf renders an invoice draft into a paginated A4 document. The
// layout is a fixed template drawn with absolute positions: header box,
// two party columns, a banded items table with row-granular page breaks,
// a totals box and an optional notes block.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tusfactus/factus/internal/billing"
	"github.com/tusfactus/factus/internal/format"
	"github.com/tusfactus/factus/internal/models"
)

// ErrRender wraps any failure of the drawing surface. The caller surfaces
// it as a single localized message; no partial document escapes.
var ErrRender = errors.New("invoice rendering failed")

// Document is the immutable snapshot the engine lays out. Descriptions stay
// raw text; every numeric cell comes from the paired Calculation through
// the Formatter so the print matches the on-screen figures.
type Document struct {
	Number    string
	IssueDate string
	DueDate   string

	Seller models.Party
	Client models.Party

	Lines  []Line
	Totals billing.Totals
	Notes  string
}

// Line pairs a raw item description with its derived figures.
type Line struct {
	Description string
	Calc        billing.Calculation
}

// FromInvoice snapshots a draft and its calculations into a Document.
func FromInvoice(inv models.Invoice, calcs []billing.Calculation, totals billing.Totals) Document {
	doc := Document{
		Number:    inv.Number,
		IssueDate: inv.IssueDate,
		DueDate:   inv.DueDate,
		Seller:    inv.Seller,
		Client:    inv.Client,
		Totals:    totals,
		Notes:     inv.Notes,
	}
	for i, it := range inv.Items {
		if i >= len(calcs) {
			break
		}
		doc.Lines = append(doc.Lines, Line{Description: it.Description, Calc: calcs[i]})
	}
	return doc
}

// Result carries the finished document and its page count.
type Result struct {
	Bytes []byte
	Pages int
}

// Render lays out doc and returns the finished PDF. Same input always
// yields the same output. Panics from the drawing surface are recovered
// and reported as ErrRender.
func Render(doc Document, f *format.Formatter, lang string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%w: %v", ErrRender, r)
		}
	}()

	l := newLayout(f, lang)
	y := l.header(doc, topMargin)
	y = l.parties(doc, y)
	y = l.table(doc, y)
	y = l.totalsBox(doc, y)
	l.notes(doc, y)

	if l.pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, l.pdf.Error())
	}
	var buf bytes.Buffer
	if oerr := l.pdf.Output(&buf); oerr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, oerr)
	}
	return &Result{Bytes: buf.Bytes(), Pages: l.pdf.PageNo()}, nil
}

var fileUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename derives the download name from the invoice number, substituting
// a placeholder when the number is empty and keeping the result
// filesystem-safe.
func Filename(number string) string {
	n := fileUnsafe.ReplaceAllString(strings.TrimSpace(number), "-")
	n = strings.Trim(n, "-.")
	if n == "" {
		n = "draft"
	}
	return "factura-" + n + ".pdf"
}
