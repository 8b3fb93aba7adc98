package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// Canvas geometry in pixels, A4 portrait at 150dpi.
const (
	canvasWidth  = 1240
	canvasHeight = 1754
	canvasMargin = 100
	lineHeight   = 26
	glyphWidth   = 7 // basicfont.Face7x13 advance
)

// snapshotQuality is deliberately higher than the asset shrink quality; the
// page raster is the whole document here, not a decoration.
const snapshotQuality = 85

// SnapshotRenderer lays the bill out on an off-screen raster surface and
// embeds one full-page image per document page. Output is visually flat and
// larger than the vector strategy, with no independent control over where
// content breaks inside a page.
type SnapshotRenderer struct {
	assets   *AssetLoader
	business domain.BusinessProfile
}

// NewSnapshotRenderer creates a snapshot renderer for the given business profile.
func NewSnapshotRenderer(assets *AssetLoader, business domain.BusinessProfile) *SnapshotRenderer {
	return &SnapshotRenderer{assets: assets, business: business}
}

// Render rasterizes the bill page by page and wraps the pages into a PDF.
func (r *SnapshotRenderer) Render(ctx context.Context, bill *domain.Bill) (*Document, error) {
	assets, err := r.assets.Load(ctx)
	if err != nil {
		return nil, err
	}

	pages, err := r.paintPages(bill, assets)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(bill.CreatedAt)
	pdf.SetModificationDate(bill.CreatedAt)
	imgOpts := gofpdf.ImageOptions{ImageType: "JPEG"}

	for i, page := range pages {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: snapshotQuality}); err != nil {
			return nil, &RenderError{Op: "encode_page_raster", Err: err}
		}

		name := fmt.Sprintf("page-%d", i)
		pdf.AddPage()
		pdf.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(buf.Bytes()))
		pdf.ImageOptions(name, 0, 0, 210, 297, false, imgOpts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, &RenderError{Op: "encode_pdf", Err: err}
	}

	return &Document{Bytes: out.Bytes(), Filename: Filename(bill)}, nil
}

func (r *SnapshotRenderer) paintPages(bill *domain.Bill, assets *AssetSet) ([]*image.RGBA, error) {
	logo, _, err := image.Decode(bytes.NewReader(assets.Logo))
	if err != nil {
		return nil, &RenderError{Op: "decode_logo", Err: err}
	}
	signature, _, err := image.Decode(bytes.NewReader(assets.Signature))
	if err != nil {
		return nil, &RenderError{Op: "decode_signature", Err: err}
	}

	p := newPainter()

	p.drawImageCentered(logo)
	p.advance(logo.Bounds().Dy() + lineHeight)
	p.drawCentered(r.business.Name)
	p.drawCentered(r.business.Address)
	p.drawCentered("Mobile: " + r.business.Phone)
	p.drawRule()

	left := canvasMargin
	right := canvasWidth / 2
	p.drawAt(left, "Name: "+bill.CustomerName)
	p.drawAtSameLine(right, "Bill No: "+bill.BillNumber)
	p.advance(lineHeight)
	p.drawAt(left, "Mobile: "+bill.CustomerMobile)
	p.drawAtSameLine(right, "Date: "+bill.CreatedAt.Format("02/01/2006"))
	p.advance(lineHeight)
	p.drawRule()

	header := fmt.Sprintf("%-48s%-20s%14s%16s", "Item", "Qty", "Rate", "Amount")
	p.drawAt(left, header)
	p.advance(lineHeight)
	p.drawRule()
	for _, item := range bill.Items {
		row := fmt.Sprintf("%-48s%-20s%14s%16s",
			item.Product,
			formatQuantity(item.Quantity, item.Unit),
			formatRate(item.Rate),
			fmt.Sprintf("%.2f", item.Amount),
		)
		p.drawAt(left, row)
		p.advance(lineHeight)
	}
	p.drawRule()

	total := fmt.Sprintf("TOTAL: %.2f", bill.TotalAmount)
	p.drawAt(canvasWidth-canvasMargin-len(total)*glyphWidth, total)
	p.advance(2 * lineHeight)

	p.drawImageAt(canvasMargin, signature)
	p.advance(signature.Bounds().Dy() + lineHeight)
	p.drawAt(left, "Authorized Stamp and Signature")
	p.advance(lineHeight)

	return p.pages, nil
}

// painter tracks the current page and vertical position, starting a fresh
// page whenever content would run off the bottom margin.
type painter struct {
	pages []*image.RGBA
	cur   *image.RGBA
	y     int
}

func newPainter() *painter {
	p := &painter{}
	p.newPage()
	return p
}

func (p *painter) newPage() {
	page := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	stddraw.Draw(page, page.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)
	p.pages = append(p.pages, page)
	p.cur = page
	p.y = canvasMargin
}

func (p *painter) ensure(height int) {
	if p.y+height > canvasHeight-canvasMargin {
		p.newPage()
	}
}

func (p *painter) advance(height int) {
	p.y += height
}

func (p *painter) drawAt(x int, s string) {
	p.ensure(lineHeight)
	drawString(p.cur, x, p.y, s)
}

// drawAtSameLine draws on the current line without reserving space; callers
// advance once per line.
func (p *painter) drawAtSameLine(x int, s string) {
	drawString(p.cur, x, p.y, s)
}

func (p *painter) drawCentered(s string) {
	p.ensure(lineHeight)
	drawString(p.cur, (canvasWidth-len(s)*glyphWidth)/2, p.y, s)
	p.y += lineHeight
}

func (p *painter) drawRule() {
	p.ensure(lineHeight)
	rule := image.Rect(canvasMargin, p.y, canvasWidth-canvasMargin, p.y+2)
	stddraw.Draw(p.cur, rule, image.NewUniform(color.Black), image.Point{}, stddraw.Src)
	p.y += lineHeight
}

func (p *painter) drawImageCentered(img image.Image) {
	p.ensure(img.Bounds().Dy() + lineHeight)
	p.drawImage((canvasWidth-img.Bounds().Dx())/2, img)
}

func (p *painter) drawImageAt(x int, img image.Image) {
	p.ensure(img.Bounds().Dy() + lineHeight)
	p.drawImage(x, img)
}

func (p *painter) drawImage(x int, img image.Image) {
	bounds := img.Bounds()
	target := image.Rect(x, p.y, x+bounds.Dx(), p.y+bounds.Dy())
	stddraw.Draw(p.cur, target, img, bounds.Min, stddraw.Over)
}

func drawString(dst *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}
