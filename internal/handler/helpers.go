package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/billing"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/domain"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/model"
	"github.com/sourabhsalvis2-sketch/Fruit-Shop/internal/service"
)

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// toCreateBillInput maps a bill request DTO to the service input.
func toCreateBillInput(req model.CreateBillRequest) service.CreateBillInput {
	input := service.CreateBillInput{
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		Items:          make([]service.LineInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.LineInput{
			Product:  item.Product,
			Unit:     item.Unit,
			Quantity: item.Quantity,
			Rate:     item.Rate,
		})
	}
	return input
}

// toBillResponse maps a finalized bill to its response DTO.
func toBillResponse(bill *domain.Bill) model.BillResponse {
	items := make([]model.LineItemResponse, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, model.LineItemResponse{
			ID:       item.ID,
			Product:  item.Product,
			Unit:     string(item.Unit),
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Amount:   item.Amount,
		})
	}
	return model.BillResponse{
		ID:             bill.ID,
		BillNumber:     bill.BillNumber,
		CustomerName:   bill.CustomerName,
		CustomerMobile: bill.CustomerMobile,
		Items:          items,
		TotalAmount:    bill.TotalAmount,
		CreatedAt:      bill.CreatedAt.Format(time.RFC3339),
	}
}

// validationDetails converts a ValidationError to response error details.
func validationDetails(verr *billing.ValidationError) []model.ErrorDetail {
	details := make([]model.ErrorDetail, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		details = append(details, model.ErrorDetail{
			Field:   v.Field,
			Message: v.Message,
		})
	}
	return details
}
