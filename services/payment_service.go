package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/utils"
)

type PaymentService struct {
	db     *gorm.DB
	cache  cache.Client
	locker *redislock.Client
	logger *logrus.Logger
}

// NewPaymentService takes an optional lock client; pass nil to rely on the
// database row lock alone.
func NewPaymentService(db *gorm.DB, cacheClient cache.Client, locker *redislock.Client, logger *logrus.Logger) *PaymentService {
	return &PaymentService{db: db, cache: cacheClient, locker: locker, logger: logger}
}

// Get returns nil when the payment does not exist.
func (s *PaymentService) Get(ctx context.Context, id int) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *PaymentService) List(ctx context.Context, limit, offset int, invoiceId, studentId, schoolId *int) (*utils.Paginated[models.Payment], error) {
	query := s.db.WithContext(ctx).Model(&models.Payment{})
	if studentId != nil || schoolId != nil {
		query = query.Joins("JOIN invoices ON invoices.id = payments.invoice_id")
	}
	if invoiceId != nil {
		query = query.Where("payments.invoice_id = ?", *invoiceId)
	}
	if studentId != nil {
		query = query.Where("invoices.student_id = ?", *studentId)
	}
	if schoolId != nil {
		query = query.Where("invoices.school_id = ?", *schoolId)
	}
	return utils.Paginate[models.Payment](query, limit, offset)
}

// Create records a payment against an invoice.
//
// Business rules:
//   - the invoice must exist and not be cancelled
//   - the amount must be positive
//   - total payments must not exceed the invoice amount; exact equality is
//     allowed and fully pays the invoice
//
// Two guards serialize concurrent payments against one invoice: a
// best-effort redis lock across processes, and authoritatively a FOR UPDATE
// row lock on the invoice inside the transaction that reads the payment sum.
// Either alone prevents two racing creations from jointly overpaying.
func (s *PaymentService) Create(ctx context.Context, input *models.NewPayment) (*models.Payment, error) {
	if s.locker != nil {
		lockKey := fmt.Sprintf("payment:invoice:%d", input.InvoiceId)
		lock, err := s.locker.Obtain(ctx, lockKey, 30*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
		} else if err != redislock.ErrNotObtained && s.logger != nil {
			s.logger.WithField("key", lockKey).Debug("payment lock unavailable")
		}
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	query := tx
	// sqlite has no FOR UPDATE and is single-writer anyway
	if tx.Dialector.Name() == "mysql" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var invoice models.Invoice
	err := query.First(&invoice, input.InvoiceId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil, utils.NewNotFoundError("Invoice", input.InvoiceId)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if invoice.Status == models.InvoiceStatusCancelled {
		tx.Rollback()
		return nil, utils.NewBusinessRuleError("cannot add payment to cancelled invoice")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		tx.Rollback()
		return nil, utils.NewValidationError("payment amount must be greater than zero")
	}

	// Prevent overpayment: the sum is read inside the same transaction as
	// the row lock above, so a racing creation sees the committed total.
	var payments []models.Payment
	if err := tx.Where("invoice_id = ?", invoice.ID).Find(&payments).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}
	if totalPaid.Add(input.Amount).GreaterThan(invoice.Amount) {
		tx.Rollback()
		return nil, utils.NewBusinessRuleError("total payments cannot exceed invoice amount")
	}

	payment := models.Payment{
		InvoiceId: input.InvoiceId,
		PaidAt:    input.PaidAt,
		Amount:    input.Amount,
		Method:    input.Method,
		Reference: input.Reference,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(ctx, cache.SchoolStatementPrefix(invoice.SchoolId))
	s.cache.DeletePrefix(ctx, cache.StudentStatementPrefix(invoice.StudentId))
	return &payment, nil
}
