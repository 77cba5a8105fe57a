package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mattilda/billing_backend/models"
)

// StatementService assembles per-school and per-student account statements.
// Every invoice's payment set is loaded inside one transaction before any
// total is accumulated, so the aggregation works on a single consistent
// snapshot of the ledger.
type StatementService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewStatementService(db *gorm.DB, logger *logrus.Logger) *StatementService {
	return &StatementService{db: db, logger: logger}
}

// GetSchoolStatement returns nil when the school does not exist.
func (s *StatementService) GetSchoolStatement(ctx context.Context, schoolId int) (*models.SchoolStatement, error) {
	var school models.School
	var invoices []models.Invoice
	var studentsCount int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&school, schoolId).Error; err != nil {
			return err
		}
		if err := tx.Preload("Payments").Preload("Student").
			Where("school_id = ?", schoolId).Order("id").Find(&invoices).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).Where("school_id = ?", schoolId).Count(&studentsCount).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	totalInvoiced, totalPaid, items := aggregateInvoices(invoices, func(inv *models.Invoice) string {
		return inv.Student.FullName()
	})

	return &models.SchoolStatement{
		SchoolId:      school.ID,
		SchoolName:    school.Name,
		StudentsCount: studentsCount,
		TotalInvoiced: models.NewMoney(totalInvoiced),
		TotalPaid:     models.NewMoney(totalPaid),
		TotalPending:  models.NewMoney(totalInvoiced.Sub(totalPaid)),
		Invoices:      items,
	}, nil
}

// GetStudentStatement returns nil when the student does not exist.
func (s *StatementService) GetStudentStatement(ctx context.Context, studentId int) (*models.StudentStatement, error) {
	var student models.Student
	var school models.School
	var invoices []models.Invoice

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&student, studentId).Error; err != nil {
			return err
		}
		if err := tx.First(&school, student.SchoolId).Error; err != nil {
			return err
		}
		return tx.Preload("Payments").
			Where("student_id = ?", studentId).Order("id").Find(&invoices).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	totalInvoiced, totalPaid, items := aggregateInvoices(invoices, func(*models.Invoice) string {
		return student.FullName()
	})

	return &models.StudentStatement{
		StudentId:     student.ID,
		StudentName:   student.FullName(),
		SchoolId:      student.SchoolId,
		SchoolName:    school.Name,
		TotalInvoiced: models.NewMoney(totalInvoiced),
		TotalPaid:     models.NewMoney(totalPaid),
		TotalPending:  models.NewMoney(totalInvoiced.Sub(totalPaid)),
		Invoices:      items,
	}, nil
}

// aggregateInvoices runs the balance calculator over every invoice and
// accumulates totals. Cancelled invoices are excluded from the totals but
// still produce a line item with their computed balance.
func aggregateInvoices(invoices []models.Invoice, studentName func(*models.Invoice) string) (totalInvoiced, totalPaid decimal.Decimal, items []models.StatementInvoiceItem) {
	totalInvoiced = decimal.Zero
	totalPaid = decimal.Zero
	items = make([]models.StatementInvoiceItem, 0, len(invoices))

	for i := range invoices {
		inv := &invoices[i]
		balance := inv.CalculateBalance(inv.Payments)
		if balance.Status != models.InvoiceStatusCancelled {
			totalInvoiced = totalInvoiced.Add(inv.Amount)
			totalPaid = totalPaid.Add(balance.TotalPaid.Decimal)
		}
		items = append(items, models.StatementInvoiceItem{
			InvoiceId:   inv.ID,
			StudentId:   inv.StudentId,
			StudentName: studentName(inv),
			Amount:      balance.Amount,
			TotalPaid:   balance.TotalPaid,
			Balance:     balance.Balance,
			Status:      balance.Status,
			DueDate:     inv.DueDate,
		})
	}
	return totalInvoiced, totalPaid, items
}
