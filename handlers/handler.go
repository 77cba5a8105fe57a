package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/middlewares"
	"github.com/mattilda/billing_backend/services"
	"github.com/mattilda/billing_backend/utils"
)

type Handler struct {
	schools    *services.SchoolService
	students   *services.StudentService
	invoices   *services.InvoiceService
	payments   *services.PaymentService
	statements *services.StatementService
	cache      cache.Client
	logger     *logrus.Logger
}

func NewHandler(
	schools *services.SchoolService,
	students *services.StudentService,
	invoices *services.InvoiceService,
	payments *services.PaymentService,
	statements *services.StatementService,
	cacheClient cache.Client,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		schools:    schools,
		students:   students,
		invoices:   invoices,
		payments:   payments,
		statements: statements,
		cache:      cacheClient,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)

	v1 := r.Group("/api/v1", middlewares.APIKeyMiddleware())

	v1.POST("/schools", h.CreateSchool)
	v1.GET("/schools", h.ListSchools)
	v1.GET("/schools/:id", h.GetSchool)
	v1.PUT("/schools/:id", h.UpdateSchool)
	v1.DELETE("/schools/:id", h.DeleteSchool)
	v1.GET("/schools/:id/statement", h.GetSchoolStatement)

	v1.POST("/students", h.CreateStudent)
	v1.GET("/students", h.ListStudents)
	v1.GET("/students/:id", h.GetStudent)
	v1.PUT("/students/:id", h.UpdateStudent)
	v1.DELETE("/students/:id", h.DeleteStudent)
	v1.GET("/students/:id/statement", h.GetStudentStatement)

	v1.POST("/invoices", h.CreateInvoice)
	v1.GET("/invoices", h.ListInvoices)
	v1.GET("/invoices/:id", h.GetInvoice)
	v1.GET("/invoices/:id/balance", h.GetInvoiceBalance)
	v1.PUT("/invoices/:id", h.UpdateInvoice)
	v1.POST("/invoices/:id/cancel", h.CancelInvoice)

	v1.POST("/payments", h.CreatePayment)
	v1.GET("/payments", h.ListPayments)
	v1.GET("/payments/:id", h.GetPayment)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "school billing ledger API"})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "invalid id"))
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPageLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// intQuery returns nil when the parameter is absent.
func intQuery(c *gin.Context, name string) (*int, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", "invalid "+name))
		return nil, false
	}
	return &n, true
}
