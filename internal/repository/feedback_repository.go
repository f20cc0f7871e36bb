package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// FeedbackRepository handles per-class, per-student rating records.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByID(id uuid.UUID) (*models.Feedback, error)
	Update(feedback *models.Feedback) error
	SetEditable(id uuid.UUID, editable bool) error
	ListByClass(classID uuid.UUID) ([]models.Feedback, error)
	ListByStudent(studentID uuid.UUID) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	return r.db.Create(feedback).Error
}

func (r *feedbackRepository) GetByID(id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.Preload("Student").Preload("Tutor").
		First(&feedback, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) Update(feedback *models.Feedback) error {
	return r.db.Save(feedback).Error
}

func (r *feedbackRepository) SetEditable(id uuid.UUID, editable bool) error {
	return r.db.Model(&models.Feedback{}).Where("id = ?", id).
		Update("is_editable", editable).Error
}

func (r *feedbackRepository) ListByClass(classID uuid.UUID) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Preload("Student").
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepository) ListByStudent(studentID uuid.UUID) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Preload("Tutor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
