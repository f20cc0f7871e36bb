package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// AssignmentRepository handles assignments and their submissions.
type AssignmentRepository interface {
	Create(assignment *models.Assignment, assignees []models.User) error
	GetByID(id uuid.UUID) (*models.Assignment, error)
	ListByTutor(tutorID uuid.UUID) ([]models.Assignment, error)
	ListByIDs(ids []uuid.UUID) ([]models.Assignment, error)
	ListByAssignee(studentID uuid.UUID) ([]models.Assignment, error)

	CreateSubmission(sub *models.Submission) error
	GetSubmission(id uuid.UUID) (*models.Submission, error)
	UpdateSubmissionStatus(id uuid.UUID, status models.SubmissionStatus) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates an assignment repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *models.Assignment, assignees []models.User) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}
		if len(assignees) == 0 {
			return nil
		}
		return tx.Model(assignment).Association("Assignees").Append(assignees)
	})
}

func (r *assignmentRepository) GetByID(id uuid.UUID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.Preload("Assignees").Preload("Submissions").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListByTutor loads a tutor's assignments with assignees and
// submissions, the working set of the reconciliation job.
func (r *assignmentRepository) ListByTutor(tutorID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Preload("Assignees").Preload("Submissions").
		Where("tutor_id = ?", tutorID).
		Order("created_at").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListByIDs(ids []uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if len(ids) == 0 {
		return assignments, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) ListByAssignee(studentID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Preload("Submissions", "student_id = ?", studentID).
		Joins("JOIN assignment_assignees aa ON aa.assignment_id = assignments.id").
		Where("aa.user_id = ?", studentID).
		Order("deadline").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) CreateSubmission(sub *models.Submission) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	return r.db.Create(sub).Error
}

func (r *assignmentRepository) GetSubmission(id uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *assignmentRepository) UpdateSubmissionStatus(id uuid.UUID, status models.SubmissionStatus) error {
	return r.db.Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
