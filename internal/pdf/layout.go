package pdf

import (
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/tusfactus/factus/internal/format"
	"github.com/tusfactus/factus/internal/i18n"
	"github.com/tusfactus/factus/internal/models"
)

// Geometry in mm on A4 portrait. The cursor runs top to bottom; sections
// take a y and return the next free y. Auto page break is off because the
// engine owns every break decision.
const (
	topMargin    = 14.0
	sideMargin   = 14.0
	bottomMargin = 14.0

	partyMinSpace = 48.0 // required before starting the party block
	partyGutter   = 10.0
	partyLineH    = 4.0

	tableLineH    = 5.0
	bandH         = 6.0
	cellPadX      = 1.5
	tableMinSpace = 22.0 // title + band + one single-line row

	totalsRowH = 6.0
	notesLineH = 4.0
)

// description, qty, price, discount, VAT, IRPF, amount: 182mm total,
// filling A4 width between the side margins.
var colWidths = [7]float64{68, 14, 24, 16, 16, 16, 28}

type layout struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	f     *format.Formatter
	label func(string) string

	pageW float64
	pageH float64
}

func newLayout(f *format.Formatter, lang string) *layout {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle("Factura", true)
	doc.AddPage()
	w, h := doc.GetPageSize()
	return &layout{
		pdf:   doc,
		tr:    doc.UnicodeTranslatorFromDescriptor(""),
		f:     f,
		label: func(code string) string { return i18n.T(lang, code) },
		pageW: w,
		pageH: h,
	}
}

func (l *layout) bottom() float64 { return l.pageH - bottomMargin }

func (l *layout) newPage() float64 {
	l.pdf.AddPage()
	return topMargin
}

func (l *layout) text(x, y float64, s string) {
	l.pdf.Text(x, y, l.tr(s))
}

func (l *layout) textRight(rightX, y float64, s string) {
	t := l.tr(s)
	l.pdf.Text(rightX-l.pdf.GetStringWidth(t), y, t)
}

// header draws the invoice number title and the two optional date lines.
func (l *layout) header(doc Document, y float64) float64 {
	y += 8
	l.pdf.SetFont("Helvetica", "B", 22)
	l.text(sideMargin, y, l.label("invoice_number")+": "+doc.Number)
	y += 10

	l.pdf.SetFont("Helvetica", "", 10)
	if strings.TrimSpace(doc.IssueDate) != "" {
		l.text(sideMargin, y, l.label("issue_date")+": "+doc.IssueDate)
		y += 5
	}
	if strings.TrimSpace(doc.DueDate) != "" {
		l.text(sideMargin, y, l.label("due_date")+": "+doc.DueDate)
		y += 5
	}
	return y + 6
}

// parties draws seller and client side by side; the cursor continues below
// the taller column.
func (l *layout) parties(doc Document, y float64) float64 {
	if y+partyMinSpace > l.bottom() {
		y = l.newPage()
	}
	colW := (l.pageW - 2*sideMargin - partyGutter) / 2
	leftY := l.party(sideMargin, y, "your_data", doc.Seller, true)
	rightY := l.party(sideMargin+colW+partyGutter, y, "client_data", doc.Client, false)
	if rightY > leftY {
		leftY = rightY
	}
	return leftY + 8
}

func (l *layout) party(x, y float64, titleCode string, p models.Party, withIBAN bool) float64 {
	l.pdf.SetFont("Helvetica", "B", 11)
	l.text(x, y, l.label(titleCode))
	y += 5

	l.pdf.SetFont("Helvetica", "", 9)
	for _, line := range partyLines(p, l.label, withIBAN) {
		l.text(x, y, line)
		y += partyLineH
	}
	return y
}

// partyLines assembles the printable lines for one party. Empty fields are
// skipped entirely: no label without a value, no reserved blank line.
// Postal code and city share one line, omitted when both are empty.
func partyLines(p models.Party, label func(string) string, withIBAN bool) []string {
	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}
	labeled := func(code, v string) {
		if strings.TrimSpace(v) != "" {
			add(label(code) + ": " + strings.TrimSpace(v))
		}
	}

	add(p.Name)
	labeled("nif", p.TaxID)
	add(p.Address)
	add(p.PostalCode + " " + p.City)
	add(p.Country)
	labeled("phone", p.Phone)
	add(p.Email)
	if withIBAN {
		labeled("iban", p.IBAN)
	}
	return lines
}

// table draws the items section: title, header band, then one row per
// line. Rows break pages individually; the band is redrawn after every
// break and stripe parity follows the pre-pagination index.
func (l *layout) table(doc Document, y float64) float64 {
	if y+tableMinSpace > l.bottom() {
		y = l.newPage()
	}
	l.pdf.SetFont("Helvetica", "B", 11)
	l.text(sideMargin, y, l.label("items"))
	y += 6

	y = l.headerBand(y)
	l.pdf.SetFont("Helvetica", "", 8)
	for i, line := range doc.Lines {
		cells := l.rowCells(line)
		rowH := l.rowHeight(cells)
		if y+rowH > l.bottom() {
			y = l.newPage()
			y = l.headerBand(y)
			l.pdf.SetFont("Helvetica", "", 8)
		}
		l.row(y, i, cells, rowH)
		y += rowH
	}
	return y + 6
}

func (l *layout) headerBand(y float64) float64 {
	codes := [7]string{"description", "quantity", "price", "discount", "tax", "irpf", "amount"}
	l.pdf.SetFillColor(235, 235, 235)
	l.pdf.Rect(sideMargin, y, tableWidth(), bandH, "F")
	l.pdf.SetFont("Helvetica", "B", 8)
	x := sideMargin
	for i, code := range codes {
		if i == len(codes)-1 {
			l.textRight(x+colWidths[i]-cellPadX, y+4, l.label(code))
		} else {
			l.text(x+cellPadX, y+4, l.label(code))
		}
		x += colWidths[i]
	}
	return y + bandH
}

func (l *layout) rowCells(line Line) [7]string {
	desc := line.Description
	if strings.TrimSpace(desc) == "" {
		desc = "-"
	}
	c := line.Calc
	return [7]string{
		desc,
		l.f.Decimal(c.Qty),
		l.f.Amount(c.Price),
		l.f.Percent(c.DiscountPct),
		l.f.Percent(c.VATPct),
		l.f.Percent(c.IRPFPct),
		l.f.Amount(c.Total),
	}
}

// rowHeight is max(1, widest column's wrapped line count) * line height.
// Must be called with the row font active so wrapping matches drawing.
func (l *layout) rowHeight(cells [7]string) float64 {
	maxLines := 1
	for i, cell := range cells {
		n := len(l.pdf.SplitLines([]byte(l.tr(cell)), colWidths[i]-2*cellPadX))
		if n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines) * tableLineH
}

// rowFill reports whether the row at pre-pagination index i gets the zebra
// background. Parity never changes because a page break moved the row.
func rowFill(i int) bool { return i%2 == 1 }

func (l *layout) row(y float64, idx int, cells [7]string, rowH float64) {
	if rowFill(idx) {
		l.pdf.SetFillColor(245, 245, 245)
		l.pdf.Rect(sideMargin, y, tableWidth(), rowH, "F")
	}
	x := sideMargin
	for i, cell := range cells {
		w := colWidths[i]
		ty := y + 3.5
		for _, ln := range l.pdf.SplitLines([]byte(l.tr(cell)), w-2*cellPadX) {
			s := string(ln)
			if i == len(cells)-1 {
				l.pdf.Text(x+w-cellPadX-l.pdf.GetStringWidth(s), ty, s)
			} else {
				l.pdf.Text(x+cellPadX, ty, s)
			}
			ty += tableLineH
		}
		x += w
	}
}

func tableWidth() float64 {
	var w float64
	for _, cw := range colWidths {
		w += cw
	}
	return w
}

// totalsBox prints the aggregate block right-aligned. The IRPF row only
// appears when withholding applies.
func (l *layout) totalsBox(doc Document, y float64) float64 {
	t := doc.Totals
	rows := [][2]string{
		{l.label("tax_base"), l.f.Amount(t.Base)},
		{l.label("total_tax"), l.f.Amount(t.VAT)},
	}
	if t.IRPF != 0 {
		rows = append(rows, [2]string{l.label("total_irpf"), "-" + l.f.Amount(t.IRPF)})
	}
	rows = append(rows, [2]string{l.label("total"), l.f.Amount(t.Total)})

	needed := float64(len(rows))*totalsRowH + 4
	if y+needed > l.bottom() {
		y = l.newPage()
	}

	rightX := l.pageW - sideMargin
	for i, r := range rows {
		if i == len(rows)-1 {
			l.pdf.SetFont("Helvetica", "B", 12)
		} else {
			l.pdf.SetFont("Helvetica", "B", 10)
		}
		y += totalsRowH
		l.textRight(rightX, y, r[0]+": "+r[1])
	}
	return y + 8
}

// notes prints the free-text block, wrapped to the content width. The
// whole section is skipped when the text is blank; long notes continue
// across pages line by line.
func (l *layout) notes(doc Document, y float64) {
	if strings.TrimSpace(doc.Notes) == "" {
		return
	}
	if y+12 > l.bottom() {
		y = l.newPage()
	}
	l.pdf.SetFont("Helvetica", "B", 10)
	l.text(sideMargin, y, l.label("notes"))
	y += 5

	l.pdf.SetFont("Helvetica", "", 9)
	translated := l.tr(doc.Notes)
	for _, ln := range l.pdf.SplitLines([]byte(translated), l.pageW-2*sideMargin) {
		if y+notesLineH > l.bottom() {
			y = l.newPage()
		}
		y += notesLineH
		l.pdf.Text(sideMargin, y, string(ln))
	}
}
