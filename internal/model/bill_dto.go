package model

// LineItemRequest is one requested bill line. Amount is deliberately absent:
// the server recomputes it from quantity and rate.
type LineItemRequest struct {
	Product  string  `json:"product"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
}

// CreateBillRequest is the payload for creating, rendering, or publishing a bill.
type CreateBillRequest struct {
	CustomerName   string            `json:"customerName"`
	CustomerMobile string            `json:"customerMobile"`
	Items          []LineItemRequest `json:"items"`
}

// ShareBillRequest additionally carries the WhatsApp number to share with.
// An empty number falls back to the customer's mobile.
type ShareBillRequest struct {
	CreateBillRequest
	WhatsAppNumber string `json:"whatsappNumber"`
}

// LineItemResponse is one finalized bill line.
type LineItemResponse struct {
	ID       string  `json:"id"`
	Product  string  `json:"product"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// BillResponse represents a finalized bill.
type BillResponse struct {
	ID             string             `json:"id"`
	BillNumber     string             `json:"billNumber"`
	CustomerName   string             `json:"customerName"`
	CustomerMobile string             `json:"customerMobile"`
	Items          []LineItemResponse `json:"items"`
	TotalAmount    float64            `json:"totalAmount"`
	CreatedAt      string             `json:"createdAt"`
}

// PublishBillResponse represents the outcome of rendering and uploading a
// bill. When the upload failed but rendering succeeded, Uploaded is false and
// Document carries the base64 PDF so the client can still download or print.
type PublishBillResponse struct {
	Bill        BillResponse `json:"bill"`
	Uploaded    bool         `json:"uploaded"`
	DocumentURL string       `json:"documentUrl,omitempty"`
	ShareURL    string       `json:"shareUrl,omitempty"`
	Filename    string       `json:"filename"`
	Document    string       `json:"document,omitempty"` // base64 PDF fallback
	UploadError string       `json:"uploadError,omitempty"`
}

// FruitsResponse lists the product pick list.
type FruitsResponse struct {
	Fruits []string `json:"fruits"`
}
