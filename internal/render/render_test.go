package render

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
)

var testBusiness = domain.BusinessProfile{
	Name:    "Sai Fruit Suppliers",
	Address: "Dasara Chowk, Gadhinglaj",
	Phone:   "9860121156 / 9226959588",
}

// writeTestAsset writes a small solid-color PNG and returns its path.
func writeTestAsset(t *testing.T, dir, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func testAssetLoader(t *testing.T) *AssetLoader {
	t.Helper()
	dir := t.TempDir()
	logo := writeTestAsset(t, dir, "logo.png")
	signature := writeTestAsset(t, dir, "signature.png")
	return NewAssetLoader(logo, signature)
}

func testBill() *domain.Bill {
	return &domain.Bill{
		ID:             "b1",
		BillNumber:     "BILL-1756540800000-0A1B",
		CustomerName:   "Test User",
		CustomerMobile: "9999999999",
		Items: []domain.LineItem{
			{ID: "l1", Product: "Apple", Unit: domain.UnitWeight, Quantity: 2, Rate: 50, Amount: 100},
			{ID: "l2", Product: "Banana", Unit: domain.UnitDozen, Quantity: 1.5, Rate: 60, Amount: 90},
		},
		TotalAmount: 190,
		CreatedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyVector, false},
		{"vector", StrategyVector, false},
		{"snapshot", StrategySnapshot, false},
		{"canvas", "", true},
		{"VECTOR", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestFilename(t *testing.T) {
	bill := testBill()

	assert.Equal(t, "bill-BILL-1756540800000-0A1B.pdf", Filename(bill))
}

func TestVectorRender(t *testing.T) {
	r := NewVectorRenderer(testAssetLoader(t), testBusiness)

	doc, err := r.Render(context.Background(), testBill())

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "bill-BILL-1756540800000-0A1B.pdf", doc.Filename)
	require.Greater(t, len(doc.Bytes), 4)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}

func TestVectorRenderIsDeterministic(t *testing.T) {
	r := NewVectorRenderer(testAssetLoader(t), testBusiness)
	bill := testBill()

	first, err := r.Render(context.Background(), bill)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), bill)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestSnapshotRender(t *testing.T) {
	r := NewSnapshotRenderer(testAssetLoader(t), testBusiness)

	doc, err := r.Render(context.Background(), testBill())

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "bill-BILL-1756540800000-0A1B.pdf", doc.Filename)
	require.Greater(t, len(doc.Bytes), 4)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}

func TestSnapshotRenderIsDeterministic(t *testing.T) {
	r := NewSnapshotRenderer(testAssetLoader(t), testBusiness)
	bill := testBill()

	first, err := r.Render(context.Background(), bill)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), bill)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestStrategiesShareFilename(t *testing.T) {
	loader := testAssetLoader(t)
	bill := testBill()

	vector, err := NewVectorRenderer(loader, testBusiness).Render(context.Background(), bill)
	require.NoError(t, err)
	snapshot, err := NewSnapshotRenderer(loader, testBusiness).Render(context.Background(), bill)
	require.NoError(t, err)

	// Same bill, same artifact name: a re-render under either strategy
	// replaces the previous upload instead of accumulating copies.
	assert.Equal(t, vector.Filename, snapshot.Filename)
}

func TestRenderMissingLogo(t *testing.T) {
	dir := t.TempDir()
	signature := writeTestAsset(t, dir, "signature.png")
	loader := NewAssetLoader(filepath.Join(dir, "nope.png"), signature)
	r := NewVectorRenderer(loader, testBusiness)

	doc, err := r.Render(context.Background(), testBill())

	require.Nil(t, doc)
	var aerr *AssetError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "logo", aerr.Name)
}

func TestRenderMissingSignature(t *testing.T) {
	dir := t.TempDir()
	logo := writeTestAsset(t, dir, "logo.png")
	loader := NewAssetLoader(logo, filepath.Join(dir, "nope.png"))
	r := NewSnapshotRenderer(loader, testBusiness)

	doc, err := r.Render(context.Background(), testBill())

	require.Nil(t, doc)
	var aerr *AssetError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "signature", aerr.Name)
}

func TestVectorRenderManyItemsPaginates(t *testing.T) {
	r := NewVectorRenderer(testAssetLoader(t), testBusiness)
	bill := testBill()

	items := make([]domain.LineItem, 0, 60)
	for i := 0; i < 60; i++ {
		items = append(items, domain.LineItem{
			ID: "l", Product: "Apple", Unit: domain.UnitWeight,
			Quantity: 1, Rate: 10, Amount: 10,
		})
	}
	bill.Items = items
	bill.TotalAmount = 600

	doc, err := r.Render(context.Background(), bill)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc.Bytes[:4]))
}
