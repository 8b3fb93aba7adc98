package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// Page geometry in millimeters, A4 portrait.
const (
	pageLeft    = 10.0
	pageTop     = 10.0
	pageWidth   = 190.0
	pageHeight  = 277.0
	marginLeft  = 20.0
	marginRight = 190.0
	tableTop    = 85.0
	rowHeight   = 8.0
	pageBreakY  = 275.0
)

var tableColumns = []struct {
	label string
	width float64
}{
	{"Item", 70},
	{"Qty", 34},
	{"Rate", 33},
	{"Amount", 33},
}

// VectorRenderer builds the document from drawing primitives: a bordered
// page, a centered header block, a ruled customer section, a grid table for
// the items, and a signature block positioned below wherever the table ends.
type VectorRenderer struct {
	assets   *AssetLoader
	business domain.BusinessProfile
}

// NewVectorRenderer creates a vector renderer for the given business profile.
func NewVectorRenderer(assets *AssetLoader, business domain.BusinessProfile) *VectorRenderer {
	return &VectorRenderer{assets: assets, business: business}
}

// Render produces the bill PDF. Asset failures surface as *AssetError,
// layout and encoding failures as *RenderError.
func (r *VectorRenderer) Render(ctx context.Context, bill *domain.Bill) (*Document, error) {
	assets, err := r.assets.Load(ctx)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(true)
	// Pin the metadata clock to the bill so re-rendering the same bill
	// yields identical bytes.
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(bill.CreatedAt)
	pdf.SetModificationDate(bill.CreatedAt)
	pdf.AddPage()
	drawPageBorder(pdf)

	imgOpts := gofpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader("logo", imgOpts, bytes.NewReader(assets.Logo))
	pdf.RegisterImageOptionsReader("signature", imgOpts, bytes.NewReader(assets.Signature))

	pdf.ImageOptions("logo", 90, 12, 30, 20, false, imgOpts, 0, "")

	textCentered(pdf, 40, "Arial", "B", 18, r.business.Name)
	textCentered(pdf, 47, "Arial", "", 11, r.business.Address)
	textCentered(pdf, 53, "Arial", "", 11, "Mobile: "+r.business.Phone)
	pdf.Line(marginLeft, 57, marginRight, 57)

	pdf.SetFont("Arial", "", 12)
	pdf.Text(marginLeft, 67, "Name: "+bill.CustomerName)
	pdf.Text(marginLeft, 75, "Mobile: "+bill.CustomerMobile)
	pdf.Text(140, 67, "Bill No: "+bill.BillNumber)
	pdf.Text(140, 75, "Date: "+bill.CreatedAt.Format("02/01/2006"))
	pdf.Line(marginLeft, 80, marginRight, 80)

	tableEnd := drawItemsTable(pdf, bill.Items)

	// Everything below hangs off the table's finishing coordinate so the
	// total and signature never overlap the rows.
	finalY := tableEnd + 15
	pdf.Line(marginLeft, finalY-7, marginRight, finalY-7)

	pdf.ImageOptions("signature", 25, finalY-5, 40, 25, false, imgOpts, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Text(25, finalY+25, "Authorized Stamp and Signature")

	pdf.SetFont("Arial", "B", 12)
	total := fmt.Sprintf("TOTAL: %.2f", bill.TotalAmount)
	pdf.Text(marginRight-pdf.GetStringWidth(total), finalY, total)

	pdf.Line(marginLeft, finalY+30, marginRight, finalY+30)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Op: "encode_pdf", Err: err}
	}

	return &Document{Bytes: buf.Bytes(), Filename: Filename(bill)}, nil
}

// drawItemsTable draws the header row and one row per line item, breaking to
// a fresh bordered page when rows run past the bottom. It returns the
// vertical coordinate where the table finished.
func drawItemsTable(pdf *gofpdf.Fpdf, items []domain.LineItem) float64 {
	y := drawTableHeader(pdf, tableTop)

	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		if y+rowHeight > pageBreakY {
			pdf.AddPage()
			drawPageBorder(pdf)
			y = drawTableHeader(pdf, marginLeft)
			pdf.SetFont("Arial", "", 10)
		}

		cells := []string{
			item.Product,
			formatQuantity(item.Quantity, item.Unit),
			formatRate(item.Rate),
			fmt.Sprintf("%.2f", item.Amount),
		}
		pdf.SetXY(marginLeft, y)
		for i, col := range tableColumns {
			pdf.CellFormat(col.width, rowHeight, cells[i], "1", 0, "C", false, 0, "")
		}
		y += rowHeight
	}

	return y
}

func drawTableHeader(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	for _, col := range tableColumns {
		pdf.CellFormat(col.width, rowHeight, col.label, "1", 0, "C", true, 0, "")
	}
	return y + rowHeight
}

func drawPageBorder(pdf *gofpdf.Fpdf) {
	pdf.SetLineWidth(0.5)
	pdf.Rect(pageLeft, pageTop, pageWidth, pageHeight, "D")
}

func textCentered(pdf *gofpdf.Fpdf, y float64, family, style string, size float64, s string) {
	pdf.SetFont(family, style, size)
	pdf.Text(105-pdf.GetStringWidth(s)/2, y, s)
}

func formatQuantity(q float64, unit domain.Unit) string {
	return strconv.FormatFloat(q, 'f', -1, 64) + " " + string(unit)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
