package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/utils"
)

type InvoiceService struct {
	db     *gorm.DB
	cache  cache.Client
	logger *logrus.Logger
}

func NewInvoiceService(db *gorm.DB, cacheClient cache.Client, logger *logrus.Logger) *InvoiceService {
	return &InvoiceService{db: db, cache: cacheClient, logger: logger}
}

// validateInvoiceInput enforces the invoice business rules before a create
// or update is persisted:
//   - the student must exist and belong to the given school
//   - the amount must be positive
//   - the due date must be on or after the issue date
func (s *InvoiceService) validateInvoiceInput(ctx context.Context, schoolId, studentId int, issueDate, dueDate models.Date, amount decimal.Decimal) error {
	var student models.Student
	err := s.db.WithContext(ctx).First(&student, studentId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("Student", studentId)
	}
	if err != nil {
		return err
	}
	if student.SchoolId != schoolId {
		return utils.NewValidationError("invoice school_id must match student's school_id")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return utils.NewValidationError("invoice amount must be greater than zero")
	}
	if dueDate.Before(issueDate) {
		return utils.NewValidationError("invoice due_date must be on or after issue_date")
	}
	return nil
}

// Get returns nil when the invoice does not exist.
func (s *InvoiceService) Get(ctx context.Context, id int) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// GetBalance reports the computed balance view of one invoice.
func (s *InvoiceService) GetBalance(ctx context.Context, id int) (*models.InvoiceBalance, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	var payments []models.Payment
	if err := s.db.WithContext(ctx).Where("invoice_id = ?", id).Find(&payments).Error; err != nil {
		return nil, err
	}
	balance := invoice.CalculateBalance(payments)
	return &balance, nil
}

func (s *InvoiceService) List(ctx context.Context, limit, offset int, schoolId, studentId *int, status *models.InvoiceStatus) (*utils.Paginated[models.Invoice], error) {
	query := s.db.WithContext(ctx).Model(&models.Invoice{})
	if schoolId != nil {
		query = query.Where("school_id = ?", *schoolId)
	}
	if studentId != nil {
		query = query.Where("student_id = ?", *studentId)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	return utils.Paginate[models.Invoice](query, limit, offset)
}

func (s *InvoiceService) Create(ctx context.Context, input *models.NewInvoice) (*models.Invoice, error) {
	if err := s.validateInvoiceInput(ctx, input.SchoolId, input.StudentId, input.IssueDate, input.DueDate, input.Amount); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "MXN"
	}
	invoice := models.Invoice{
		SchoolId:    input.SchoolId,
		StudentId:   input.StudentId,
		IssueDate:   input.IssueDate,
		DueDate:     input.DueDate,
		Amount:      input.Amount,
		Currency:    currency,
		Status:      models.InvoiceStatusPending,
		Description: input.Description,
	}
	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}

	s.invalidateStatements(ctx, invoice.SchoolId, invoice.StudentId)
	return &invoice, nil
}

// Update writes only the supplied fields. Unspecified fields default to the
// invoice's current values before the business rules run again, so an update
// that touches nothing still re-validates against current state.
func (s *InvoiceService) Update(ctx context.Context, id int, input *models.UpdateInvoice) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil || invoice == nil {
		return nil, err
	}

	issueDate := invoice.IssueDate
	if input.IssueDate != nil {
		issueDate = *input.IssueDate
	}
	dueDate := invoice.DueDate
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}
	amount := invoice.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}

	if err := s.validateInvoiceInput(ctx, invoice.SchoolId, invoice.StudentId, issueDate, dueDate, amount); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.IssueDate != nil {
		updates["IssueDate"] = *input.IssueDate
	}
	if input.DueDate != nil {
		updates["DueDate"] = *input.DueDate
	}
	if input.Amount != nil {
		updates["Amount"] = *input.Amount
	}
	if input.Currency != nil {
		updates["Currency"] = *input.Currency
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, utils.NewValidationError("invalid invoice status")
		}
		updates["Status"] = *input.Status
	}
	if input.Description != nil {
		updates["Description"] = *input.Description
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(invoice).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.invalidateStatements(ctx, invoice.SchoolId, invoice.StudentId)
	return invoice, nil
}

// Cancel is unconditional: an invoice with recorded payments may still be
// cancelled. Returns nil when the invoice does not exist.
func (s *InvoiceService) Cancel(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil || invoice == nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(invoice).Update("Status", models.InvoiceStatusCancelled).Error; err != nil {
		return nil, err
	}

	s.invalidateStatements(ctx, invoice.SchoolId, invoice.StudentId)
	return invoice, nil
}

// invalidateStatements purges every cached variant of the affected school
// and student statements after a ledger mutation has committed. Best-effort:
// the TTL window bounds staleness if the cache store is unreachable.
func (s *InvoiceService) invalidateStatements(ctx context.Context, schoolId, studentId int) {
	s.cache.DeletePrefix(ctx, cache.SchoolStatementPrefix(schoolId))
	s.cache.DeletePrefix(ctx, cache.StudentStatementPrefix(studentId))
}
