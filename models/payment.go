package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID        int             `gorm:"primary_key" json:"id"`
	InvoiceId int             `gorm:"index;not null" json:"invoice_id"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    string          `gorm:"size:32;not null" json:"method"`
	Reference *string         `gorm:"size:128" json:"reference"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewPayment struct {
	InvoiceId int             `json:"invoice_id" binding:"required"`
	PaidAt    time.Time       `json:"paid_at" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Method    string          `json:"method" binding:"required"`
	Reference *string         `json:"reference"`
}
