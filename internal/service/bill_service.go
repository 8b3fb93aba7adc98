package service

import (
	"context"
	"fmt"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/billing"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/ledger"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/render"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/share"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/storage"
)

const pdfContentType = "application/pdf"

// BillServiceError represents an error in the bill service.
type BillServiceError struct {
	Op  string
	Err error
}

func (e *BillServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *BillServiceError) Unwrap() error { return e.Err }

// LineInput is one requested line item. Amounts are never accepted from the
// caller; they are recomputed from quantity and rate.
type LineInput struct {
	Product  string
	Unit     string
	Quantity float64
	Rate     float64
}

// CreateBillInput carries everything needed to finalize one bill.
type CreateBillInput struct {
	CustomerName   string
	CustomerMobile string
	Items          []LineInput
}

// PublishResult is the outcome of rendering and uploading one bill. The
// document is present whenever rendering succeeded, even if the upload
// afterwards failed.
type PublishResult struct {
	Bill      *domain.Bill
	Document  *render.Document
	PublicURL string
	ShareURL  string
}

// BillService drives the bill pipeline: ledger rebuild, finalize, render,
// publish, share link.
type BillService interface {
	CreateBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error)
	RenderBill(ctx context.Context, bill *domain.Bill, strategy render.Strategy) (*render.Document, error)
	PublishBill(ctx context.Context, bill *domain.Bill) (*PublishResult, error)
	ShareBill(ctx context.Context, bill *domain.Bill, whatsappNumber string) (*PublishResult, error)
}

// BillServiceImpl implements the BillService interface.
type BillServiceImpl struct {
	assembler  *billing.Assembler
	vector     render.Renderer
	snapshot   render.Renderer
	blobStore  storage.BlobStore
	business   domain.BusinessProfile
	workerPool chan struct{}
}

// NewBillService creates a new BillService. The worker pool bounds how many
// render/upload sequences run at once; ledger edits and finalize stay
// synchronous and never block.
func NewBillService(vector, snapshot render.Renderer, blobStore storage.BlobStore, business domain.BusinessProfile, maxWorkers int) BillService {
	return &BillServiceImpl{
		assembler:  billing.NewAssembler(),
		vector:     vector,
		snapshot:   snapshot,
		blobStore:  blobStore,
		business:   business,
		workerPool: make(chan struct{}, maxWorkers),
	}
}

// CreateBill rebuilds a ledger draft from the requested lines, recomputing
// every amount server-side, then finalizes it into an immutable bill.
// Validation failures surface as *billing.ValidationError listing every
// violated field.
func (s *BillServiceImpl) CreateBill(ctx context.Context, input CreateBillInput) (*domain.Bill, error) {
	draft := ledger.New()

	for i, item := range input.Items {
		var id string
		if i == 0 {
			id = draft.Lines()[0].ID
		} else {
			id = draft.AddLine()
		}
		if err := draft.UpdateProduct(id, item.Product); err != nil {
			return nil, &BillServiceError{Op: "build_ledger", Err: err}
		}
		if err := draft.UpdateUnit(id, domain.Unit(item.Unit)); err != nil {
			return nil, &BillServiceError{Op: "build_ledger", Err: err}
		}
		if err := draft.UpdateQuantity(id, item.Quantity); err != nil {
			return nil, &BillServiceError{Op: "build_ledger", Err: err}
		}
		if err := draft.UpdateRate(id, item.Rate); err != nil {
			return nil, &BillServiceError{Op: "build_ledger", Err: err}
		}
	}

	bill, err := s.assembler.Finalize(input.CustomerName, input.CustomerMobile, draft.Lines())
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// RenderBill renders a finalized bill with the chosen strategy. Both
// strategies produce semantically equivalent documents; they differ only in
// layout fidelity and size.
func (s *BillServiceImpl) RenderBill(ctx context.Context, bill *domain.Bill, strategy render.Strategy) (*render.Document, error) {
	if err := s.acquireWorker(ctx); err != nil {
		return nil, err
	}
	defer s.releaseWorker()

	renderer := s.vector
	if strategy == render.StrategySnapshot {
		renderer = s.snapshot
	}

	doc, err := renderer.Render(ctx, bill)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// PublishBill renders the bill with the vector strategy, uploads it under a
// key derived from the bill number (overwriting any previous upload of the
// same bill), and resolves the public URL. When the upload fails the
// rendered document is still returned alongside the *storage.UploadError so
// the caller can offer a local download instead.
func (s *BillServiceImpl) PublishBill(ctx context.Context, bill *domain.Bill) (*PublishResult, error) {
	if err := s.acquireWorker(ctx); err != nil {
		return nil, err
	}
	defer s.releaseWorker()

	doc, err := s.vector.Render(ctx, bill)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{Bill: bill, Document: doc}

	if err := s.blobStore.Upload(doc.Filename, doc.Bytes, pdfContentType); err != nil {
		return result, err
	}

	result.PublicURL = s.blobStore.PublicURL(doc.Filename)
	return result, nil
}

// ShareBill publishes the bill and builds a WhatsApp deep link carrying the
// public document URL.
func (s *BillServiceImpl) ShareBill(ctx context.Context, bill *domain.Bill, whatsappNumber string) (*PublishResult, error) {
	result, err := s.PublishBill(ctx, bill)
	if err != nil {
		return result, err
	}

	result.ShareURL = share.WhatsAppLink(s.business.Name, whatsappNumber, bill.BillNumber, result.PublicURL)
	return result, nil
}

func (s *BillServiceImpl) acquireWorker(ctx context.Context) error {
	select {
	case s.workerPool <- struct{}{}:
		return nil
	case <-ctx.Done():
		return &BillServiceError{Op: "acquire_worker", Err: ctx.Err()}
	}
}

func (s *BillServiceImpl) releaseWorker() {
	<-s.workerPool
}
