package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mockmate/interview-api/internal/models"
)

type ResumeRepository interface {
	SaveActive(resume *models.SavedResume) error
	FindActive(userID uuid.UUID) (*models.SavedResume, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// SaveActive inserts the resume as the user's active one, deactivating any
// previous rows in the same transaction.
func (r *resumeRepository) SaveActive(resume *models.SavedResume) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SavedResume{}).
			Where("user_id = ?", resume.UserID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		resume.IsActive = true
		return tx.Create(resume).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindActive(userID uuid.UUID) (*models.SavedResume, error) {
	var resume models.SavedResume
	err := r.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active resume: %w", err)
	}
	return &resume, nil
}
