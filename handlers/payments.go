package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/models"
)

func (h *Handler) CreatePayment(c *gin.Context) {
	var input models.NewPayment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	payment, err := h.payments.Create(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *Handler) ListPayments(c *gin.Context) {
	limit, offset := pageParams(c)
	invoiceId, ok := intQuery(c, "invoice_id")
	if !ok {
		return
	}
	studentId, ok := intQuery(c, "student_id")
	if !ok {
		return
	}
	schoolId, ok := intQuery(c, "school_id")
	if !ok {
		return
	}

	page, err := h.payments.List(c.Request.Context(), limit, offset, invoiceId, studentId, schoolId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	payment, err := h.payments.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if payment == nil {
		h.respondNotFound(c, "Payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}
