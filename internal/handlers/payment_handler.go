package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// PaymentHandler records and lists commission-bearing transactions.
type PaymentHandler struct {
	payments services.PaymentService
}

// NewPaymentHandler creates the payment handler.
func NewPaymentHandler(payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePaymentRequest is the payment payload. Months defaults to 1.
type CreatePaymentRequest struct {
	CourseID      uuid.UUID `json:"courseId" binding:"required"`
	Months        int       `json:"months"`
	PaymentMethod string    `json:"paymentMethod"`
	IsManualEntry bool      `json:"isManualEntry"`
}

// Create handles POST /api/payments. The paying student is the
// session user.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	payment, err := h.payments.Create(services.CreatePaymentRequest{
		StudentID:     currentUser(c).ID,
		CourseID:      req.CourseID,
		Months:        req.Months,
		Method:        req.PaymentMethod,
		IsManualEntry: req.IsManualEntry,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "payment": payment})
}

// List handles GET /api/payments, scoped to the caller's role.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.payments.ListFor(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}
