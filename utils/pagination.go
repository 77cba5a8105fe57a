package utils

import "gorm.io/gorm"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Paginated[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// Paginate applies offset pagination to a prepared query and returns the
// page together with the total count of matching rows. Limit is clamped
// to 1..MaxPageLimit.
func Paginate[T any](query *gorm.DB, limit, offset int) (*Paginated[T], error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, limit)
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}

	return &Paginated[T]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
