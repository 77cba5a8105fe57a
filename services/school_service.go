package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
	"github.com/mattilda/billing_backend/utils"
)

type SchoolService struct {
	db     *gorm.DB
	cache  cache.Client
	logger *logrus.Logger
}

func NewSchoolService(db *gorm.DB, cacheClient cache.Client, logger *logrus.Logger) *SchoolService {
	return &SchoolService{db: db, cache: cacheClient, logger: logger}
}

// Get returns nil when the school does not exist.
func (s *SchoolService) Get(ctx context.Context, id int) (*models.School, error) {
	var school models.School
	err := s.db.WithContext(ctx).First(&school, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) List(ctx context.Context, limit, offset int) (*utils.Paginated[models.School], error) {
	query := s.db.WithContext(ctx).Model(&models.School{})
	return utils.Paginate[models.School](query, limit, offset)
}

func (s *SchoolService) Create(ctx context.Context, input *models.NewSchool) (*models.School, error) {
	school := models.School{
		Name:       input.Name,
		ExternalId: input.ExternalId,
		Address:    input.Address,
	}
	if err := s.db.WithContext(ctx).Create(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) Update(ctx context.Context, id int, input *models.UpdateSchool) (*models.School, error) {
	school, err := s.Get(ctx, id)
	if err != nil || school == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.ExternalId != nil {
		updates["ExternalId"] = *input.ExternalId
	}
	if input.Address != nil {
		updates["Address"] = *input.Address
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(school).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return school, nil
}

// Delete removes the school together with its students, invoices and
// payments as one explicit multi-step cascade. Returns false when the
// school does not exist.
func (s *SchoolService) Delete(ctx context.Context, id int) (bool, error) {
	school, err := s.Get(ctx, id)
	if err != nil || school == nil {
		return false, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	invoiceIds := tx.Model(&models.Invoice{}).Select("id").Where("school_id = ?", id)
	if err := tx.Where("invoice_id IN (?)", invoiceIds).Delete(&models.Payment{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Where("school_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Where("school_id = ?", id).Delete(&models.Student{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Delete(&models.School{}, id).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Commit().Error; err != nil {
		return false, err
	}

	s.cache.DeletePrefix(ctx, cache.SchoolStatementPrefix(id))
	return true, nil
}
