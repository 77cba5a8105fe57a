package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mattilda/billing_backend/models"
)

// RegisterValidations installs the custom binding rules used by the input
// structs ("invoicestatus", "studentstatus").
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("invoicestatus", func(fl validator.FieldLevel) bool {
		return models.InvoiceStatus(fl.Field().String()).Valid()
	})
	v.RegisterValidation("studentstatus", func(fl validator.FieldLevel) bool {
		return models.StudentStatus(fl.Field().String()).Valid()
	})
}
