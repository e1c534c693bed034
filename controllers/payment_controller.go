package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/shopspring/decimal"
)

// PaymentRequest represents the request body for recording a payment.
// Card fields are optional; the CVV is stored but never returned.
type PaymentRequest struct {
	Amount   *decimal.Decimal `json:"amount_paid" binding:"required"`
	IsCash   bool             `json:"is_cash"`
	CCNumber *string          `json:"cc_number"`
	CCName   *string          `json:"cc_name"`
	CCExpiry *string          `json:"cc_expiry"`
	CCCVV    *string          `json:"cc_cvv"`
}

func (r PaymentRequest) toInput() services.PaymentInput {
	return services.PaymentInput{
		Amount:     *r.Amount,
		IsCash:     r.IsCash,
		CardNumber: r.CCNumber,
		CardName:   r.CCName,
		CardExpiry: r.CCExpiry,
		CardCVV:    r.CCCVV,
	}
}

// ListSalesPayments handles GET /api/v1/sales-orders/:id/payments
func ListSalesPayments(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	payments, summary, err := orderService().ListSalesPayments(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve payments")
		return
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p.ID, p.OrderID, p.PaymentDetails))
	}
	respondData(c, http.StatusOK, toPaymentListResponse(resp, summary))
}

// RecordSalesPayment handles POST /api/v1/sales-orders/:id/payments
func RecordSalesPayment(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := orderService().RecordSalesPayment(c.Request.Context(), orderID, req.toInput())
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	respondData(c, http.StatusCreated, toPaymentResponse(payment.ID, payment.OrderID, payment.PaymentDetails))
}

// ListServicePayments handles GET /api/v1/service-orders/:id/payments
func ListServicePayments(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	payments, summary, err := orderService().ListServicePayments(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to retrieve payments")
		return
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p.ID, p.OrderID, p.PaymentDetails))
	}
	respondData(c, http.StatusOK, toPaymentListResponse(resp, summary))
}

// RecordServicePayment handles POST /api/v1/service-orders/:id/payments
func RecordServicePayment(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment, err := orderService().RecordServicePayment(c.Request.Context(), orderID, req.toInput())
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	respondData(c, http.StatusCreated, toPaymentResponse(payment.ID, payment.OrderID, payment.PaymentDetails))
}
