package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/models"
)

func (h *Handler) CreateInvoice(c *gin.Context) {
	var input models.NewInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	invoice, err := h.invoices.Create(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *Handler) ListInvoices(c *gin.Context) {
	limit, offset := pageParams(c)
	schoolId, ok := intQuery(c, "school_id")
	if !ok {
		return
	}
	studentId, ok := intQuery(c, "student_id")
	if !ok {
		return
	}
	var status *models.InvoiceStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.InvoiceStatus(raw)
		if !parsed.Valid() {
			c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "invalid invoice status"))
			return
		}
		status = &parsed
	}

	page, err := h.invoices.List(c.Request.Context(), limit, offset, schoolId, studentId, status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if invoice == nil {
		h.respondNotFound(c, "Invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceBalance reports the computed paid/balance/status view, which is
// authoritative over the persisted status field.
func (h *Handler) GetInvoiceBalance(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	balance, err := h.invoices.GetBalance(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if balance == nil {
		h.respondNotFound(c, "Invoice")
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.UpdateInvoice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	invoice, err := h.invoices.Update(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if invoice == nil {
		h.respondNotFound(c, "Invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) CancelInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.Cancel(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if invoice == nil {
		h.respondNotFound(c, "Invoice")
		return
	}
	c.JSON(http.StatusOK, invoice)
}
