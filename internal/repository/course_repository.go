package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// CourseRepository handles course persistence. Enrollment and
// instructor assignment go through gorm associations so both sides of
// each relation are kept in a single join table.
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uuid.UUID) (*models.Course, error)
	List() ([]models.Course, error)
	ListByInstructor(instructorID uuid.UUID) ([]models.Course, error)
	AddStudent(courseID uuid.UUID, student *models.User) error
	AddInstructor(courseID uuid.UUID, instructor *models.User) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.Create(course).Error
}

func (r *courseRepository) GetByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Instructor").Preload("Instructors").Preload("Students").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Preload("Instructor").Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) ListByInstructor(instructorID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.
		Joins("LEFT JOIN course_instructors ci ON ci.course_id = courses.id").
		Where("courses.instructor_id = ? OR ci.user_id = ?", instructorID, instructorID).
		Distinct().
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) AddStudent(courseID uuid.UUID, student *models.User) error {
	return r.db.Model(&models.Course{ID: courseID}).
		Association("Students").Append(student)
}

func (r *courseRepository) AddInstructor(courseID uuid.UUID, instructor *models.User) error {
	return r.db.Model(&models.Course{ID: courseID}).
		Association("Instructors").Append(instructor)
}
