package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/billing"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/render"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/storage"
)

// fakeRenderer returns canned bytes or a canned error.
type fakeRenderer struct {
	bytes []byte
	err   error
	calls int
}

func (f *fakeRenderer) Render(ctx context.Context, bill *domain.Bill) (*render.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &render.Document{Bytes: f.bytes, Filename: render.Filename(bill)}, nil
}

// fakeBlobStore records uploads and optionally fails them.
type fakeBlobStore struct {
	uploadErr error
	keys      []string
	data      map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{data: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(key string, data []byte, contentType string) error {
	if f.uploadErr != nil {
		return &storage.UploadError{Key: key, Err: f.uploadErr}
	}
	f.keys = append(f.keys, key)
	f.data[key] = data
	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://blobs.example.com/bills/" + key
}

var testBusiness = domain.BusinessProfile{
	Name:    "Sai Fruit Suppliers",
	Address: "Dasara Chowk, Gadhinglaj",
	Phone:   "9860121156 / 9226959588",
}

func newTestService(vector, snapshot render.Renderer, store storage.BlobStore) BillService {
	return NewBillService(vector, snapshot, store, testBusiness, 2)
}

func validInput() CreateBillInput {
	return CreateBillInput{
		CustomerName:   "Test User",
		CustomerMobile: "9999999999",
		Items: []LineInput{
			{Product: "Apple", Unit: "kg", Quantity: 2, Rate: 50},
		},
	}
}

func TestCreateBill(t *testing.T) {
	svc := newTestService(&fakeRenderer{}, &fakeRenderer{}, newFakeBlobStore())

	bill, err := svc.CreateBill(context.Background(), validInput())

	require.NoError(t, err)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 100.0, bill.Items[0].Amount)
	assert.Equal(t, 100.0, bill.TotalAmount)
	assert.NotEmpty(t, bill.Items[0].ID)
}

func TestCreateBillMultipleLines(t *testing.T) {
	svc := newTestService(&fakeRenderer{}, &fakeRenderer{}, newFakeBlobStore())
	input := validInput()
	input.Items = append(input.Items, LineInput{Product: "Banana", Unit: "dozen", Quantity: 1.5, Rate: 60})

	bill, err := svc.CreateBill(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, bill.Items, 2)
	assert.Equal(t, 190.0, bill.TotalAmount)
}

func TestCreateBillValidationFailure(t *testing.T) {
	svc := newTestService(&fakeRenderer{}, &fakeRenderer{}, newFakeBlobStore())
	input := validInput()
	input.CustomerName = ""
	input.Items[0].Quantity = 0

	bill, err := svc.CreateBill(context.Background(), input)

	require.Nil(t, bill)
	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestRenderBillPicksStrategy(t *testing.T) {
	vector := &fakeRenderer{bytes: []byte("vector-pdf")}
	snapshot := &fakeRenderer{bytes: []byte("snapshot-pdf")}
	svc := newTestService(vector, snapshot, newFakeBlobStore())

	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	doc, err := svc.RenderBill(context.Background(), bill, render.StrategyVector)
	require.NoError(t, err)
	assert.Equal(t, []byte("vector-pdf"), doc.Bytes)

	doc, err = svc.RenderBill(context.Background(), bill, render.StrategySnapshot)
	require.NoError(t, err)
	assert.Equal(t, []byte("snapshot-pdf"), doc.Bytes)

	assert.Equal(t, 1, vector.calls)
	assert.Equal(t, 1, snapshot.calls)
}

func TestRenderBillCancelledContext(t *testing.T) {
	svc := newTestService(&fakeRenderer{}, &fakeRenderer{}, newFakeBlobStore())
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Saturate the pool so acquisition has to wait on the context.
	impl := svc.(*BillServiceImpl)
	impl.workerPool <- struct{}{}
	impl.workerPool <- struct{}{}

	doc, err := svc.RenderBill(ctx, bill, render.StrategyVector)

	require.Nil(t, doc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublishBill(t *testing.T) {
	store := newFakeBlobStore()
	svc := newTestService(&fakeRenderer{bytes: []byte("pdf")}, &fakeRenderer{}, store)
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.PublishBill(context.Background(), bill)

	require.NoError(t, err)
	require.Len(t, store.keys, 1)
	key := store.keys[0]
	assert.Equal(t, "bill-"+bill.BillNumber+".pdf", key)
	assert.Equal(t, []byte("pdf"), store.data[key])
	assert.Equal(t, "https://blobs.example.com/bills/"+key, result.PublicURL)
}

func TestPublishBillUploadFailureKeepsDocument(t *testing.T) {
	store := newFakeBlobStore()
	store.uploadErr = errors.New("bucket unreachable")
	svc := newTestService(&fakeRenderer{bytes: []byte("pdf")}, &fakeRenderer{}, store)
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.PublishBill(context.Background(), bill)

	var uerr *storage.UploadError
	require.ErrorAs(t, err, &uerr)
	// The rendered document survives the failed upload so the caller can
	// still offer download or print.
	require.NotNil(t, result)
	require.NotNil(t, result.Document)
	assert.Equal(t, []byte("pdf"), result.Document.Bytes)
	assert.Empty(t, result.PublicURL)
}

func TestPublishBillRenderFailure(t *testing.T) {
	vector := &fakeRenderer{err: &render.RenderError{Op: "encode_pdf", Err: errors.New("boom")}}
	svc := newTestService(vector, &fakeRenderer{}, newFakeBlobStore())
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.PublishBill(context.Background(), bill)

	require.Nil(t, result)
	var rerr *render.RenderError
	assert.ErrorAs(t, err, &rerr)
}

func TestShareBill(t *testing.T) {
	store := newFakeBlobStore()
	svc := newTestService(&fakeRenderer{bytes: []byte("pdf")}, &fakeRenderer{}, store)
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.ShareBill(context.Background(), bill, "+91 99999 99999")

	require.NoError(t, err)
	assert.Contains(t, result.ShareURL, "https://wa.me/919999999999?text=")
	assert.Contains(t, result.ShareURL, "BILL")
	assert.NotEmpty(t, result.PublicURL)
}

func TestShareBillUploadFailure(t *testing.T) {
	store := newFakeBlobStore()
	store.uploadErr = errors.New("bucket unreachable")
	svc := newTestService(&fakeRenderer{bytes: []byte("pdf")}, &fakeRenderer{}, store)
	bill, err := svc.CreateBill(context.Background(), validInput())
	require.NoError(t, err)

	result, err := svc.ShareBill(context.Background(), bill, "9999999999")

	var uerr *storage.UploadError
	require.ErrorAs(t, err, &uerr)
	require.NotNil(t, result)
	assert.Empty(t, result.ShareURL, "no share link without a public URL")
}
