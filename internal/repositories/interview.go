package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-api/internal/models"
)

type InterviewRepository interface {
	Create(record *models.InterviewRecord) error
	FindByIDForUser(id, userID uuid.UUID) (*models.InterviewRecord, error)
	ListByUser(userID uuid.UUID, offset, limit int) ([]models.InterviewRecord, int64, error)
	DeleteByIDForUser(id, userID uuid.UUID) error
	AllByUser(userID uuid.UUID) ([]models.InterviewRecord, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(record *models.InterviewRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create interview record: %w", err)
	}
	return nil
}

// FindByIDForUser scopes the lookup to the owner so that foreign records are
// indistinguishable from missing ones.
func (r *interviewRepository) FindByIDForUser(id, userID uuid.UUID) (*models.InterviewRecord, error) {
	var record models.InterviewRecord
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview record: %w", err)
	}
	return &record, nil
}

func (r *interviewRepository) ListByUser(userID uuid.UUID, offset, limit int) ([]models.InterviewRecord, int64, error) {
	var records []models.InterviewRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list interview records: %w", err)
	}

	var total int64
	if err := r.db.Model(&models.InterviewRecord{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count interview records: %w", err)
	}

	return records, total, nil
}

func (r *interviewRepository) DeleteByIDForUser(id, userID uuid.UUID) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.InterviewRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete interview record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interviewRepository) AllByUser(userID uuid.UUID) ([]models.InterviewRecord, error) {
	var records []models.InterviewRecord
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load interview records: %w", err)
	}
	return records, nil
}
