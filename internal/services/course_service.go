package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// CreateCourseRequest describes a new course.
type CreateCourseRequest struct {
	Title      string
	Price      decimal.Decimal
	Curriculum string
}

// CreateClassRequest schedules one session of a course.
type CreateClassRequest struct {
	CourseID uuid.UUID
	Title    string
	StartAt  time.Time
	EndAt    time.Time
	TutorID  *uuid.UUID
}

// CourseService handles course authoring, enrollment and scheduling.
type CourseService interface {
	Create(owner *models.User, req CreateCourseRequest) (*models.Course, error)
	Get(id uuid.UUID) (*models.Course, error)
	List() ([]models.Course, error)
	Enroll(courseID, studentID uuid.UUID) error
	AssignInstructor(academy *models.User, courseID, tutorID uuid.UUID) error

	CreateClass(req CreateClassRequest) (*models.Class, error)
	ListClasses(courseID uuid.UUID) ([]models.Class, error)
	UpdateClassStatus(classID uuid.UUID, status models.ClassStatus) error
}

type courseService struct {
	courseRepo repository.CourseRepository
	classRepo  repository.ClassRepository
	userRepo   repository.UserRepository
}

// NewCourseService creates the course service.
func NewCourseService(courseRepo repository.CourseRepository, classRepo repository.ClassRepository, userRepo repository.UserRepository) CourseService {
	return &courseService{courseRepo: courseRepo, classRepo: classRepo, userRepo: userRepo}
}

func (s *courseService) Create(owner *models.User, req CreateCourseRequest) (*models.Course, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	course := &models.Course{
		Title:      req.Title,
		Price:      req.Price,
		Curriculum: req.Curriculum,
	}
	switch owner.Role {
	case models.RoleTutor:
		id := owner.ID
		course.InstructorID = &id
	case models.RoleAcademy:
		id := owner.ID
		course.AcademyID = &id
	case models.RoleAdmin:
		// admins create unowned courses and assign instructors later
	default:
		return nil, fmt.Errorf("%w: role %q cannot author courses", ErrForbidden, owner.Role)
	}

	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Get(id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %s", ErrNotFound, id)
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) List() ([]models.Course, error) {
	return s.courseRepo.List()
}

func (s *courseService) Enroll(courseID, studentID uuid.UUID) error {
	student, err := s.userRepo.GetByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: student %s", ErrNotFound, studentID)
		}
		return err
	}
	if student.Role != models.RoleStudent {
		return fmt.Errorf("%w: user %s is not a student", ErrInvalidInput, studentID)
	}
	if _, err := s.Get(courseID); err != nil {
		return err
	}
	return s.courseRepo.AddStudent(courseID, student)
}

func (s *courseService) AssignInstructor(academy *models.User, courseID, tutorID uuid.UUID) error {
	if academy.Role != models.RoleAcademy && academy.Role != models.RoleAdmin {
		return fmt.Errorf("%w: role %q cannot assign instructors", ErrForbidden, academy.Role)
	}
	tutor, err := s.userRepo.GetByID(tutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: tutor %s", ErrNotFound, tutorID)
		}
		return err
	}
	if tutor.Role != models.RoleTutor {
		return fmt.Errorf("%w: user %s is not a tutor", ErrInvalidInput, tutorID)
	}
	if _, err := s.Get(courseID); err != nil {
		return err
	}
	return s.courseRepo.AddInstructor(courseID, tutor)
}

func (s *courseService) CreateClass(req CreateClassRequest) (*models.Class, error) {
	if _, err := s.Get(req.CourseID); err != nil {
		return nil, err
	}
	if !req.EndAt.IsZero() && req.EndAt.Before(req.StartAt) {
		return nil, fmt.Errorf("%w: class ends before it starts", ErrInvalidInput)
	}

	class := &models.Class{
		CourseID: req.CourseID,
		Title:    req.Title,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		Status:   models.ClassScheduled,
		TutorID:  req.TutorID,
	}
	if err := s.classRepo.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *courseService) ListClasses(courseID uuid.UUID) ([]models.Class, error) {
	return s.classRepo.ListByCourse(courseID)
}

func (s *courseService) UpdateClassStatus(classID uuid.UUID, status models.ClassStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown class status %q", ErrInvalidInput, status)
	}
	if _, err := s.classRepo.GetByID(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: class %s", ErrNotFound, classID)
		}
		return err
	}
	return s.classRepo.UpdateStatus(classID, status)
}
