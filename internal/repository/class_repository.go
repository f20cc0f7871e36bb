package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// ClassRepository handles scheduled sessions and their attendance
// sub-records.
type ClassRepository interface {
	Create(class *models.Class) error
	GetByID(id uuid.UUID) (*models.Class, error)
	GetWithCourse(id uuid.UUID) (*models.Class, error)
	ListByCourse(courseID uuid.UUID) ([]models.Class, error)
	UpdateStatus(id uuid.UUID, status models.ClassStatus) error

	GetAttendance(classID, studentID uuid.UUID) (*models.ClassAttendance, error)
	SaveAttendance(tx *gorm.DB, att *models.ClassAttendance) error
	ListAttendance(classID uuid.UUID) ([]models.ClassAttendance, error)
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository creates a class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(class *models.Class) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	return r.db.Create(class).Error
}

func (r *classRepository) GetByID(id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := r.db.First(&class, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

// GetWithCourse loads the class with its course and the course's
// instructor lists, which the ledger needs to route credits.
func (r *classRepository) GetWithCourse(id uuid.UUID) (*models.Class, error) {
	var class models.Class
	err := r.db.Preload("Course").Preload("Course.Instructors").
		First(&class, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) ListByCourse(courseID uuid.UUID) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.Where("course_id = ?", courseID).Order("start_at").Find(&classes).Error
	return classes, err
}

func (r *classRepository) UpdateStatus(id uuid.UUID, status models.ClassStatus) error {
	return r.db.Model(&models.Class{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *classRepository) GetAttendance(classID, studentID uuid.UUID) (*models.ClassAttendance, error) {
	var att models.ClassAttendance
	err := r.db.Where("class_id = ? AND student_id = ?", classID, studentID).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *classRepository) SaveAttendance(tx *gorm.DB, att *models.ClassAttendance) error {
	if att.ID == uuid.Nil {
		att.ID = uuid.New()
	}
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.Save(att).Error
}

func (r *classRepository) ListAttendance(classID uuid.UUID) ([]models.ClassAttendance, error) {
	var atts []models.ClassAttendance
	err := r.db.Where("class_id = ?", classID).Find(&atts).Error
	return atts, err
}
