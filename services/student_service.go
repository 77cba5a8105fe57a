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

type StudentService struct {
	db     *gorm.DB
	cache  cache.Client
	logger *logrus.Logger
}

func NewStudentService(db *gorm.DB, cacheClient cache.Client, logger *logrus.Logger) *StudentService {
	return &StudentService{db: db, cache: cacheClient, logger: logger}
}

// Get returns nil when the student does not exist.
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) List(ctx context.Context, limit, offset int, schoolId *int) (*utils.Paginated[models.Student], error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})
	if schoolId != nil {
		query = query.Where("school_id = ?", *schoolId)
	}
	return utils.Paginate[models.Student](query, limit, offset)
}

func (s *StudentService) Create(ctx context.Context, input *models.NewStudent) (*models.Student, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", input.SchoolId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, utils.NewNotFoundError("School", input.SchoolId)
	}

	status := input.Status
	if status == "" {
		status = models.StudentStatusActive
	}
	if !status.Valid() {
		return nil, utils.NewValidationError("invalid student status")
	}

	student := models.Student{
		SchoolId:   input.SchoolId,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		ExternalId: input.ExternalId,
		Status:     status,
	}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) Update(ctx context.Context, id int, input *models.UpdateStudent) (*models.Student, error) {
	student, err := s.Get(ctx, id)
	if err != nil || student == nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.SchoolId != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", *input.SchoolId).Count(&count).Error; err != nil {
			return nil, err
		}
		if count <= 0 {
			return nil, utils.NewNotFoundError("School", *input.SchoolId)
		}
		updates["SchoolId"] = *input.SchoolId
	}
	if input.FirstName != nil {
		updates["FirstName"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["LastName"] = *input.LastName
	}
	if input.ExternalId != nil {
		updates["ExternalId"] = *input.ExternalId
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, utils.NewValidationError("invalid student status")
		}
		updates["Status"] = *input.Status
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(student).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return student, nil
}

// Delete removes the student and its invoices and payments as one explicit
// multi-step cascade. Returns false when the student does not exist.
func (s *StudentService) Delete(ctx context.Context, id int) (bool, error) {
	student, err := s.Get(ctx, id)
	if err != nil || student == nil {
		return false, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	invoiceIds := tx.Model(&models.Invoice{}).Select("id").Where("student_id = ?", id)
	if err := tx.Where("invoice_id IN (?)", invoiceIds).Delete(&models.Payment{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Where("student_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Delete(&models.Student{}, id).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Commit().Error; err != nil {
		return false, err
	}

	s.cache.DeletePrefix(ctx, cache.SchoolStatementPrefix(student.SchoolId))
	s.cache.DeletePrefix(ctx, cache.StudentStatementPrefix(id))
	return true, nil
}
