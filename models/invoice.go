package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	ID          int             `gorm:"primary_key" json:"id"`
	SchoolId    int             `gorm:"index;not null" json:"school_id"`
	StudentId   int             `gorm:"index;not null" json:"student_id"`
	IssueDate   Date            `gorm:"not null" json:"issue_date"`
	DueDate     Date            `gorm:"not null" json:"due_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    string          `gorm:"size:8;not null;default:'MXN'" json:"currency"`
	Status      InvoiceStatus   `gorm:"size:20;not null;default:'pending'" json:"status"`
	Description *string         `gorm:"size:500" json:"description"`
	School      School          `gorm:"foreignKey:SchoolId" json:"-"`
	Student     Student         `gorm:"foreignKey:StudentId" json:"-"`
	Payments    []Payment       `gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInvoice struct {
	SchoolId    int             `json:"school_id" binding:"required"`
	StudentId   int             `json:"student_id" binding:"required"`
	IssueDate   Date            `json:"issue_date" binding:"required"`
	DueDate     Date            `json:"due_date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

// Only supplied fields are written on update; school/student assignment
// is fixed at creation.
type UpdateInvoice struct {
	IssueDate   *Date            `json:"issue_date"`
	DueDate     *Date            `json:"due_date"`
	Amount      *decimal.Decimal `json:"amount"`
	Currency    *string          `json:"currency"`
	Status      *InvoiceStatus   `json:"status" binding:"omitempty,invoicestatus"`
	Description *string          `json:"description"`
}

// InvoiceBalance is the authoritative paid/balance/status view of an
// invoice, always derived from its payments at read time.
type InvoiceBalance struct {
	Amount    Money         `json:"amount"`
	TotalPaid Money         `json:"total_paid"`
	Balance   Money         `json:"balance"`
	Status    InvoiceStatus `json:"status"`
}

// CalculateBalance sums the given payments against the invoice amount and
// derives the effective status. The persisted status only wins when the
// invoice was cancelled; every other state is recomputed from payments.
// A negative balance means some path bypassed the overpayment check and is
// reported as paid, not hidden.
func (inv *Invoice) CalculateBalance(payments []Payment) InvoiceBalance {
	totalPaid := decimal.Zero
	for _, payment := range payments {
		totalPaid = totalPaid.Add(payment.Amount)
	}
	balance := inv.Amount.Sub(totalPaid)

	var status InvoiceStatus
	switch {
	case inv.Status == InvoiceStatusCancelled:
		status = InvoiceStatusCancelled
	case balance.LessThanOrEqual(decimal.Zero):
		status = InvoiceStatusPaid
	case balance.LessThan(inv.Amount):
		status = InvoiceStatusPartiallyPaid
	default:
		status = InvoiceStatusPending
	}

	return InvoiceBalance{
		Amount:    NewMoney(inv.Amount),
		TotalPaid: NewMoney(totalPaid),
		Balance:   NewMoney(balance),
		Status:    status,
	}
}
