package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/config"
	"github.com/mattilda/billing_backend/utils"
)

func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage or programming failure and surfaces as
// an opaque 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var notFound *utils.NotFoundError
	var validation *utils.ValidationError
	var businessRule *utils.BusinessRuleError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", notFound.Error()))
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", validation.Error()))
	case errors.As(err, &businessRule):
		c.JSON(http.StatusUnprocessableEntity, errorBody("BUSINESS_RULE_VIOLATION", businessRule.Error()))
	default:
		config.LogError(h.logger, "handlers", "respondError", c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, errorBody("INTERNAL_ERROR", "internal server error"))
	}
}

func (h *Handler) respondNotFound(c *gin.Context, entity string) {
	c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", entity+" not found"))
}
