package models

import "time"

type Student struct {
	ID         int           `gorm:"primary_key" json:"id"`
	SchoolId   int           `gorm:"index;not null" json:"school_id"`
	FirstName  string        `gorm:"size:100;not null" json:"first_name"`
	LastName   string        `gorm:"size:100;not null" json:"last_name"`
	ExternalId *string       `gorm:"size:64;index" json:"external_id"`
	Status     StudentStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	Invoices   []Invoice     `gorm:"foreignKey:StudentId;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type NewStudent struct {
	SchoolId   int           `json:"school_id" binding:"required"`
	FirstName  string        `json:"first_name" binding:"required"`
	LastName   string        `json:"last_name" binding:"required"`
	ExternalId *string       `json:"external_id"`
	Status     StudentStatus `json:"status" binding:"omitempty,studentstatus"`
}

type UpdateStudent struct {
	SchoolId   *int           `json:"school_id"`
	FirstName  *string        `json:"first_name"`
	LastName   *string        `json:"last_name"`
	ExternalId *string        `json:"external_id"`
	Status     *StudentStatus `json:"status" binding:"omitempty,studentstatus"`
}
