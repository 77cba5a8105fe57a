package models

import "time"

type School struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ExternalId *string   `gorm:"size:64;index" json:"external_id"`
	Address    *string   `gorm:"size:255" json:"address"`
	Students   []Student `gorm:"foreignKey:SchoolId;constraint:OnDelete:CASCADE" json:"-"`
	Invoices   []Invoice `gorm:"foreignKey:SchoolId;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewSchool struct {
	Name       string  `json:"name" binding:"required"`
	ExternalId *string `json:"external_id"`
	Address    *string `json:"address"`
}

// Only supplied fields are written on update.
type UpdateSchool struct {
	Name       *string `json:"name"`
	ExternalId *string `json:"external_id"`
	Address    *string `json:"address"`
}
