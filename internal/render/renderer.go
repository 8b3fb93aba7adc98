package render

import (
	"context"
	"fmt"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

// Strategy selects a renderer implementation per call site.
type Strategy string

const (
	// StrategyVector builds the document from drawing primitives and an
	// auto-layout table. Smallest output, full pagination control.
	StrategyVector Strategy = "vector"

	// StrategySnapshot rasterizes a laid-out page image per document page.
	// Visually faithful to the on-screen bill, larger output.
	StrategySnapshot Strategy = "snapshot"
)

// ParseStrategy maps a request parameter to a Strategy. Empty input selects
// the vector strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyVector, "":
		return StrategyVector, nil
	case StrategySnapshot:
		return StrategySnapshot, nil
	}
	return "", fmt.Errorf("unknown render strategy %q", s)
}

// Document is a rendered bill artifact ready for download, print, or upload.
type Document struct {
	Bytes    []byte
	Filename string
}

// Filename builds the canonical artifact filename for a bill.
func Filename(bill *domain.Bill) string {
	return fmt.Sprintf("bill-%s.pdf", bill.BillNumber)
}

// Renderer converts one bill into a document. Implementations read the bill
// and the static asset set; they never mutate either.
type Renderer interface {
	Render(ctx context.Context, bill *domain.Bill) (*Document, error)
}

// AssetError reports a missing or undecodable static asset. No bill can be
// rendered without the logo and signature images.
type AssetError struct {
	Name string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %s unavailable: %v", e.Name, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// RenderError reports a layout or encoding failure while building the
// document itself.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
