package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/billing"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/model"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/render"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/service"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/storage"
)

// BillHandler handles HTTP requests for bill creation, rendering, and sharing
type BillHandler struct {
	billService service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// RegisterRoutes registers the bill routes behind the auth middleware
func (h *BillHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	bills := router.Group("/v1/bills", authMiddleware)
	{
		bills.POST("", h.CreateBill)
		bills.POST("/pdf", h.DownloadBillPDF)
		bills.POST("/publish", h.PublishBill)
		bills.POST("/share", h.ShareBill)
	}

	catalog := router.Group("/v1/catalog", authMiddleware)
	{
		catalog.GET("/fruits", h.ListFruits)
	}
}

// CreateBill validates the draft and finalizes it into an immutable bill
// @Summary Create a bill
// @Description Validate customer details and line items and finalize a bill with recomputed amounts
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateBillRequest true "Bill draft"
// @Success 201 {object} model.BillResponse "Finalized bill"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Validation failed, details list every violated field"
// @Router /v1/bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req model.CreateBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), toCreateBillInput(req))
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	respondCreated(c, toBillResponse(bill))
}

// DownloadBillPDF finalizes a bill and streams the rendered PDF
// @Summary Render a bill to PDF
// @Description Finalize a bill and return the PDF using the chosen render strategy
// @Tags bills
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param strategy query string false "Render strategy: vector (default) or snapshot"
// @Param request body model.CreateBillRequest true "Bill draft"
// @Success 200 {file} file "Bill PDF"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Validation failed"
// @Failure 500 {object} model.ErrorResponse "Rendering failed"
// @Router /v1/bills/pdf [post]
func (h *BillHandler) DownloadBillPDF(c *gin.Context) {
	strategy, err := render.ParseStrategy(c.Query("strategy"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.CreateBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), toCreateBillInput(req))
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	doc, err := h.billService.RenderBill(c.Request.Context(), bill, strategy)
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	log.Printf("Rendered bill %s with %s strategy (%d bytes)", bill.BillNumber, strategy, len(doc.Bytes))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(StatusOK, "application/pdf", doc.Bytes)
}

// PublishBill finalizes, renders, and uploads a bill to the blob store
// @Summary Publish a bill
// @Description Finalize a bill, render it, upload the PDF, and return its public URL. If the upload fails the rendered PDF is returned inline so the client can still download or print it.
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateBillRequest true "Bill draft"
// @Success 200 {object} model.PublishBillResponse "Publish outcome"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Validation failed"
// @Failure 500 {object} model.ErrorResponse "Rendering failed"
// @Router /v1/bills/publish [post]
func (h *BillHandler) PublishBill(c *gin.Context) {
	var req model.CreateBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), toCreateBillInput(req))
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	result, err := h.billService.PublishBill(c.Request.Context(), bill)
	if err != nil {
		h.respondPublishOutcome(c, bill, result, err)
		return
	}

	respondOK(c, publishResponse(bill, result, nil))
}

// ShareBill publishes a bill and returns a WhatsApp deep link
// @Summary Share a bill via WhatsApp
// @Description Finalize, render, and upload a bill, then build a wa.me link with a prefilled message referencing the public PDF
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ShareBillRequest true "Bill draft plus WhatsApp number"
// @Success 200 {object} model.PublishBillResponse "Publish outcome with share link"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 422 {object} model.ErrorResponse "Validation failed"
// @Failure 500 {object} model.ErrorResponse "Rendering failed"
// @Router /v1/bills/share [post]
func (h *BillHandler) ShareBill(c *gin.Context) {
	var req model.ShareBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), toCreateBillInput(req.CreateBillRequest))
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	number := req.WhatsAppNumber
	if number == "" {
		number = bill.CustomerMobile
	}

	result, err := h.billService.ShareBill(c.Request.Context(), bill, number)
	if err != nil {
		h.respondPublishOutcome(c, bill, result, err)
		return
	}

	respondOK(c, publishResponse(bill, result, nil))
}

// ListFruits returns the product pick list
// @Summary List fruits
// @Description Return the fixed fruit pick list offered by the shop
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.FruitsResponse "Fruit names"
// @Router /v1/catalog/fruits [get]
func (h *BillHandler) ListFruits(c *gin.Context) {
	respondOK(c, model.FruitsResponse{Fruits: domain.Fruits})
}

// respondBillError maps pipeline errors to HTTP responses. Validation
// failures carry every violated field; asset and render failures are
// internal errors.
func (h *BillHandler) respondBillError(c *gin.Context, err error) {
	var verr *billing.ValidationError
	if errors.As(err, &verr) {
		respondUnprocessableEntity(c, "Bill validation failed", validationDetails(verr)...)
		return
	}

	var aerr *render.AssetError
	if errors.As(err, &aerr) {
		log.Printf("Bill asset unavailable: %v", err)
		respondInternalServerError(c, "Bill assets are unavailable")
		return
	}

	var rerr *render.RenderError
	if errors.As(err, &rerr) {
		log.Printf("Bill rendering failed: %v", err)
		respondInternalServerError(c, "Failed to render bill")
		return
	}

	log.Printf("Bill pipeline error: %v", err)
	respondInternalServerError(c, "Failed to process bill")
}

// respondPublishOutcome handles publish errors. An upload failure after a
// successful render still returns the document inline; anything else is a
// plain pipeline error.
func (h *BillHandler) respondPublishOutcome(c *gin.Context, bill *domain.Bill, result *service.PublishResult, err error) {
	var uerr *storage.UploadError
	if errors.As(err, &uerr) && result != nil && result.Document != nil {
		log.Printf("Bill %s rendered but upload failed: %v", bill.BillNumber, err)
		respondOK(c, publishResponse(bill, result, uerr))
		return
	}

	h.respondBillError(c, err)
}

func publishResponse(bill *domain.Bill, result *service.PublishResult, uploadErr *storage.UploadError) model.PublishBillResponse {
	resp := model.PublishBillResponse{
		Bill:        toBillResponse(bill),
		Uploaded:    uploadErr == nil,
		DocumentURL: result.PublicURL,
		ShareURL:    result.ShareURL,
		Filename:    result.Document.Filename,
	}
	if uploadErr != nil {
		resp.Document = base64.StdEncoding.EncodeToString(result.Document.Bytes)
		resp.UploadError = uploadErr.Error()
	}
	return resp
}
